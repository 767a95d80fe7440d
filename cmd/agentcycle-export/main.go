// Package main writes the agent cycle's transition table as XState JSON or
// a Mermaid state diagram.
//
// Usage:
//
//	agentcycle-export -pretty
//	agentcycle-export -format=mermaid -o cycle.mmd
package main

import (
	"log"
	"os"

	"github.com/felixgeelhaar/agentcycle"
	"github.com/felixgeelhaar/agentcycle/export"
)

func main() {
	exporter := export.NewXStateExporter(agentcycle.DefaultTable())
	if err := export.RunCLI(exporter, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("export: %v", err)
	}
}
