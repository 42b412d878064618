// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders run summaries and journal listings as text, JSON,
// or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ts2js/internal/journal"
	"github.com/pdiddy/ts2js/pkg/types"
)

// Mode names what a run converted.
type Mode string

const (
	ModeFile      Mode = "file"
	ModeDirectory Mode = "directory"
)

// Summary describes one completed run.
type Summary struct {
	Mode   Mode                    `json:"mode" yaml:"mode"`
	Target string                  `json:"target" yaml:"target"`
	Engine string                  `json:"engine" yaml:"engine"`
	Stats  types.ConversionStats   `json:"stats" yaml:"stats"`
	Result *types.ConversionResult `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string                  `json:"error,omitempty" yaml:"error,omitempty"`

	// RunID identifies the run in the journal; empty when not journaling.
	RunID string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
}

// ParseFormat validates an output format name. An empty name means text.
func ParseFormat(s string) (types.OutputFormat, error) {
	switch f := types.OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", types.OutputText:
		return types.OutputText, nil
	case types.OutputJSON, types.OutputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, json, or yaml)", s)
	}
}

// WriteSummary renders s to w. The text form prints the counts of a
// directory run; single-file runs already printed their status line. Both
// name the journal run, if any.
func WriteSummary(w io.Writer, format types.OutputFormat, s Summary) error {
	if s.Result != nil && s.Result.Err != nil {
		s.Error = s.Result.Err.Error()
	}
	switch format {
	case types.OutputJSON:
		return writeJSON(w, s)
	case types.OutputYAML:
		return writeYAML(w, s)
	default:
		if s.Mode == ModeDirectory {
			if _, err := fmt.Fprintf(w, "\nSummary: %d converted, %d failed, %d skipped (total: %d)\n",
				s.Stats.Succeeded, s.Stats.Failed, s.Stats.Skipped, s.Stats.Total()); err != nil {
				return err
			}
		}
		if s.RunID == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, "Journal run: %s\n", s.RunID)
		return err
	}
}

// WriteEntries renders journal entries to w.
func WriteEntries(w io.Writer, format types.OutputFormat, entries []journal.Entry) error {
	if entries == nil {
		entries = []journal.Entry{}
	}
	switch format {
	case types.OutputJSON:
		return writeJSON(w, entries)
	case types.OutputYAML:
		return writeYAML(w, entries)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No journal entries.")
		return err
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Time", "Run", "Status", "Input", "Output", "Error"})
	for _, e := range entries {
		tw.AppendRow(table.Row{
			e.RecordedAt.Local().Format("2006-01-02 15:04:05"), dash(e.RunID),
			string(e.Status), e.InputPath, dash(e.OutputPath), dash(e.Error),
		})
	}
	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
