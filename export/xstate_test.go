package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/felixgeelhaar/agentcycle"
)

func TestXStateExporter_DefaultTable(t *testing.T) {
	exporter := NewXStateExporter(agentcycle.DefaultTable())
	result, err := exporter.Export()
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}

	if result.ID != "agentCycle" {
		t.Errorf("expected ID 'agentCycle', got %s", result.ID)
	}
	if result.Initial != "init" {
		t.Errorf("expected initial 'init', got %s", result.Initial)
	}
	if len(result.States) != 7 {
		t.Errorf("expected 7 states, got %d", len(result.States))
	}

	idle, ok := result.States["idle"]
	if !ok {
		t.Fatal("expected 'idle' state")
	}
	tests := map[string]string{
		"move":  "movement",
		"shoot": "shooting",
		"calc":  "calculation",
		"stop":  "stopped",
	}
	for trigger, target := range tests {
		if idle.On[trigger].Target != target {
			t.Errorf("expected idle->%s on %s, got %q", target, trigger, idle.On[trigger].Target)
		}
	}
}

func TestXStateExporter_FinalState(t *testing.T) {
	result, err := NewXStateExporter(agentcycle.DefaultTable()).Export()
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}

	stopped := result.States["stopped"]
	if stopped.Type != "final" {
		t.Errorf("expected stopped type 'final', got %q", stopped.Type)
	}
	if stopped.On != nil {
		t.Error("expected no transitions out of the final state")
	}

	for key, node := range result.States {
		if key != "stopped" && node.Type != "" {
			t.Errorf("expected %s to have no type, got %q", key, node.Type)
		}
	}
}

func TestXStateExporter_CustomTable(t *testing.T) {
	table, err := agentcycle.NewTable("short").
		State(agentcycle.Init).
		On(agentcycle.TriggerInitialized).Target(agentcycle.Stopped).
		Done().
		State(agentcycle.Stopped).
		Done().
		Build()
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}

	result, err := NewXStateExporter(table).Export()
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}

	if len(result.States) != 2 {
		t.Errorf("expected 2 states, got %d", len(result.States))
	}
	if result.States["init"].On["initialized"].Target != "stopped" {
		t.Error("expected init->stopped on initialized")
	}
}

func TestXStateExporter_JSONOutput(t *testing.T) {
	exporter := NewXStateExporter(agentcycle.DefaultTable())

	jsonStr, err := exporter.ExportJSON()
	if err != nil {
		t.Fatalf("failed to export JSON: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed["id"] != "agentCycle" {
		t.Errorf("expected id 'agentCycle', got %v", parsed["id"])
	}

	indented, err := exporter.ExportJSONIndent("", "  ")
	if err != nil {
		t.Fatalf("failed to export indented JSON: %v", err)
	}
	if !strings.Contains(indented, "\n  \"id\"") {
		t.Errorf("expected indented output, got %s", indented)
	}
}

func TestXStateExporter_Mermaid(t *testing.T) {
	out := NewXStateExporter(agentcycle.DefaultTable()).Mermaid()

	if !strings.HasPrefix(out, "stateDiagram-v2\n") {
		t.Errorf("expected diagram header, got %q", out)
	}

	want := []string{
		"[*] --> init",
		"init --> idle : initialized",
		"idle --> movement : move",
		"movement --> shooting : moveLimit",
		"calculation --> error : calcFault",
		"error --> stopped : errorLimit",
		"stopped --> [*]",
	}
	for _, line := range want {
		if !strings.Contains(out, line) {
			t.Errorf("expected %q in output:\n%s", line, out)
		}
	}

	if got := strings.Count(out, " : "); got != 12 {
		t.Errorf("expected 12 labelled edges, got %d", got)
	}
}

func TestXStateExporter_MermaidStable(t *testing.T) {
	exporter := NewXStateExporter(agentcycle.DefaultTable())
	first := exporter.Mermaid()
	for i := 0; i < 10; i++ {
		if got := exporter.Mermaid(); got != first {
			t.Fatalf("output changed between runs:\n%s\n---\n%s", first, got)
		}
	}
}
