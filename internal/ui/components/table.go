// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/biblioteka-tui/internal/ui/styles"
	"github.com/jeranaias/biblioteka-tui/internal/util"
)

// =============================================================================
// TABLE
// =============================================================================

// Column describes one table column. Flex columns share whatever width the
// fixed columns leave over; Width is then their minimum.
type Column struct {
	Title string
	Width int
	Flex  bool
	Right bool
}

// Cell is one table cell. Color, when set, colors the padded text.
type Cell struct {
	Text  string
	Color lipgloss.TerminalColor
}

// Row is one table row.
type Row []Cell

// Table is a scrollable list with a single selected row. Cell text is padded
// by display width before styling so escape codes never skew the columns.
type Table struct {
	theme   *styles.Theme
	columns []Column
	rows    []Row

	cursor int
	offset int
	width  int
	height int
	empty  string
}

// NewTable creates a table with the given columns.
func NewTable(theme *styles.Theme, columns ...Column) *Table {
	return &Table{theme: theme, columns: columns, height: 10}
}

// SetSize sets the outer width and the number of visible rows.
func (t *Table) SetSize(width, rows int) {
	t.width = width
	if rows < 1 {
		rows = 1
	}
	t.height = rows
	t.clamp()
}

// SetEmptyText sets what is shown when there are no rows.
func (t *Table) SetEmptyText(s string) {
	t.empty = s
}

// SetRows replaces the rows, keeping the cursor in range.
func (t *Table) SetRows(rows []Row) {
	t.rows = rows
	t.clamp()
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Cursor returns the selected row index, or -1 when the table is empty.
func (t *Table) Cursor() int {
	if len(t.rows) == 0 {
		return -1
	}
	return t.cursor
}

// MoveUp moves the selection up by n rows.
func (t *Table) MoveUp(n int) {
	t.cursor -= n
	t.clamp()
}

// MoveDown moves the selection down by n rows.
func (t *Table) MoveDown(n int) {
	t.cursor += n
	t.clamp()
}

// PageUp moves the selection up by one screen.
func (t *Table) PageUp() { t.MoveUp(t.height) }

// PageDown moves the selection down by one screen.
func (t *Table) PageDown() { t.MoveDown(t.height) }

// GotoTop selects the first row.
func (t *Table) GotoTop() {
	t.cursor = 0
	t.clamp()
}

// GotoBottom selects the last row.
func (t *Table) GotoBottom() {
	t.cursor = len(t.rows) - 1
	t.clamp()
}

func (t *Table) clamp() {
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.height {
		t.offset = t.cursor - t.height + 1
	}
	if maxOffset := len(t.rows) - t.height; t.offset > maxOffset {
		t.offset = maxOffset
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// ColumnWidths resolves the width of every column for the current size.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, len(t.columns))
	fixed, flex := 0, 0
	for i, c := range t.columns {
		widths[i] = c.Width
		fixed += c.Width
		if c.Flex {
			flex++
		}
	}
	gaps := len(t.columns) - 1
	if gaps < 0 {
		gaps = 0
	}

	spare := t.width - fixed - gaps
	if flex == 0 || spare <= 0 {
		return widths
	}
	share, rest := spare/flex, spare%flex
	for i, c := range t.columns {
		if !c.Flex {
			continue
		}
		widths[i] += share
		if rest > 0 {
			widths[i]++
			rest--
		}
	}
	return widths
}

// View renders the header and the visible rows.
func (t *Table) View() string {
	widths := t.ColumnWidths()

	var b strings.Builder

	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = t.pad(c.Title, widths[i], c.Right)
	}
	b.WriteString(t.theme.TableHeader.Render(strings.Join(headers, " ")))
	b.WriteString("\n")

	if len(t.rows) == 0 {
		b.WriteString(t.theme.Empty.Render(t.empty))
		return b.String()
	}

	end := t.offset + t.height
	if end > len(t.rows) {
		end = len(t.rows)
	}
	for i := t.offset; i < end; i++ {
		b.WriteString(t.renderRow(t.rows[i], widths, i == t.cursor))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (t *Table) renderRow(row Row, widths []int, selected bool) string {
	base := t.theme.TableRow
	if selected {
		base = t.theme.TableSelected
	}

	cells := make([]string, len(t.columns))
	for i, c := range t.columns {
		var cell Cell
		if i < len(row) {
			cell = row[i]
		}
		style := base
		if cell.Color != nil {
			style = style.Foreground(cell.Color)
		}
		cells[i] = style.Render(t.pad(cell.Text, widths[i], c.Right))
	}
	return strings.Join(cells, base.Render(" "))
}

func (t *Table) pad(s string, width int, right bool) string {
	if right {
		return util.PadLeft(s, width)
	}
	return util.PadRight(s, width)
}
