// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/biblioteka-tui/internal/util"
)

// =============================================================================
// JSON OUTPUT
// =============================================================================

// JSONResponse is the envelope every command prints in --json mode.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data any `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is when the response was generated (RFC 3339, UTC)
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a successful response.
func NewJSONResponse(command string, data any) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates an error response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	msg := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Write encodes the response to w, indented.
func (r *JSONResponse) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// emit runs handler and prints its result. In JSON mode the data (or the
// error) is wrapped in a JSONResponse; otherwise render prints the data.
func emit[T any](o *options, w io.Writer, command string, handler func() (T, error), render func(T)) error {
	data, err := handler()
	if err != nil {
		err = friendly(err)
		if o.jsonOut {
			_ = NewJSONErrorResponse(command, err).Write(w)
		}
		return err
	}
	if o.jsonOut {
		return NewJSONResponse(command, data).Write(w)
	}
	render(data)
	return nil
}

// =============================================================================
// STYLES
// =============================================================================

var (
	// TitleStyle is used for command titles and headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(18)

	// ValueStyle is used for regular values
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// DimStyle is used for secondary text
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))
)

// =============================================================================
// PLAIN TABLES
// =============================================================================

// column is one column of a printed table.
type column struct {
	title string
	width int
	right bool
}

// printTable writes rows under a header, padding by display width so
// Serbian diacritics line up. Cells wider than the column are truncated.
func printTable(w io.Writer, cols []column, rows [][]string) {
	line := func(cells []string) string {
		parts := make([]string, len(cols))
		for i, c := range cols {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if c.right {
				parts[i] = util.PadLeft(cell, c.width)
			} else {
				parts[i] = util.PadRight(cell, c.width)
			}
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	titles := make([]string, len(cols))
	rules := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
		rules[i] = strings.Repeat("-", util.StringWidth(c.title))
	}
	fmt.Fprintln(w, line(titles))
	fmt.Fprintln(w, line(rules))
	for _, r := range rows {
		fmt.Fprintln(w, line(r))
	}
}

// printField writes one "label value" line.
func printField(w io.Writer, label, value string) {
	fmt.Fprintln(w, LabelStyle.Render(label)+ValueStyle.Render(value))
}
