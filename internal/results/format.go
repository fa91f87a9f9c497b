// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.yaml.in/yaml/v3"

	"github.com/yashowardhanspatil/cognemailAI/pkg/types"
)

// Format selects how the results table is written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a user-supplied format name. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format %q: use table, json or yaml", s)
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Write renders rows in the given format.
func Write(w io.Writer, rows []types.ResultRow, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, rows)
	case FormatYAML:
		return WriteYAML(w, rows)
	default:
		WriteTable(w, rows)
		return nil
	}
}

// WriteTable writes rows as a bordered table with Entity and Extracted
// Email columns.
func WriteTable(w io.Writer, rows []types.ResultRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No results yet.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Entity", "Extracted Email").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range rows {
		t.Row(r.Entity, r.ExtractedEmail)
	}

	fmt.Fprintln(w, "Extracted Information")
	fmt.Fprintln(w, t.Render())
}

// WriteJSON writes rows as indented JSON. An empty table is written as [].
func WriteJSON(w io.Writer, rows []types.ResultRow) error {
	if rows == nil {
		rows = []types.ResultRow{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteYAML writes rows as a YAML sequence.
func WriteYAML(w io.Writer, rows []types.ResultRow) error {
	if rows == nil {
		rows = []types.ResultRow{}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return nil
}
