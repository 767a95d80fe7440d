package export

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
)

// MachineExporter is implemented by types that can export to XState JSON format.
// XStateExporter implements this interface.
type MachineExporter interface {
	Export() (*XStateMachine, error)
}

// Output formats understood by RunCLI
const (
	FormatXState  = "xstate"
	FormatMermaid = "mermaid"
)

// ExportOptions configures the export behavior.
type ExportOptions struct {
	// PrettyPrint enables indented JSON output
	PrettyPrint bool

	// Indent is the string used for indentation (default: "  ")
	Indent string

	// Output is where JSON will be written (default: os.Stdout)
	Output io.Writer
}

// DefaultExportOptions returns options with sensible defaults.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		PrettyPrint: false,
		Indent:      "  ",
		Output:      os.Stdout,
	}
}

// ExportMachine exports a single machine to JSON.
func ExportMachine(exporter MachineExporter, opts ExportOptions) error {
	machine, err := exporter.Export()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	return writeJSON(machine, opts)
}

// writeJSON writes a value as JSON to the configured output.
func writeJSON(v any, opts ExportOptions) error {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var data []byte
	var err error

	if opts.PrettyPrint {
		indent := opts.Indent
		if indent == "" {
			indent = "  "
		}
		data, err = json.MarshalIndent(v, "", indent)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return fmt.Errorf("JSON marshal failed: %w", err)
	}

	// Trailing newline for terminal output
	data = append(data, '\n')
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}

	return nil
}

// RunCLI provides a simple CLI for exporting the transition table.
// Usage: agentcycle-export [-format=xstate|mermaid] [-pretty] [-indent=STR] [-o=FILE]
func RunCLI(exporter *XStateExporter, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("agentcycle-export", flag.ContinueOnError)

	format := fs.String("format", FormatXState, "Output format: xstate or mermaid")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	indent := fs.String("indent", "  ", "Indentation string (used with -pretty)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	out := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	switch *format {
	case FormatXState:
		return ExportMachine(exporter, ExportOptions{
			PrettyPrint: *pretty,
			Indent:      *indent,
			Output:      out,
		})
	case FormatMermaid:
		if _, err := io.WriteString(out, exporter.Mermaid()); err != nil {
			return fmt.Errorf("write failed: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}
