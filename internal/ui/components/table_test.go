// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/biblioteka-tui/internal/ui/styles"
)

func newTestTable(rows int) *Table {
	tbl := NewTable(styles.NewTheme("dark"),
		Column{Title: "No.", Width: 6},
		Column{Title: "Name", Width: 10, Flex: true},
		Column{Title: "Days", Width: 4, Right: true},
	)
	data := make([]Row, rows)
	for i := range data {
		data[i] = Row{{Text: fmt.Sprintf("M-%03d", i)}, {Text: "Đorđe Čolić"}, {Text: fmt.Sprint(i)}}
	}
	tbl.SetRows(data)
	return tbl
}

func TestTable_ColumnWidths(t *testing.T) {
	tbl := newTestTable(0)

	tbl.SetSize(0, 5)
	assert.Equal(t, []int{6, 10, 4}, tbl.ColumnWidths(), "no spare width keeps minimums")

	tbl.SetSize(40, 5)
	// 40 - 20 fixed - 2 gaps = 18 spare for the one flex column
	assert.Equal(t, []int{6, 28, 4}, tbl.ColumnWidths())
}

func TestTable_CursorMovement(t *testing.T) {
	tbl := newTestTable(20)
	tbl.SetSize(40, 5)

	assert.Equal(t, 0, tbl.Cursor())
	tbl.MoveUp(1)
	assert.Equal(t, 0, tbl.Cursor())

	tbl.MoveDown(3)
	assert.Equal(t, 3, tbl.Cursor())

	tbl.PageDown()
	assert.Equal(t, 8, tbl.Cursor())

	tbl.GotoBottom()
	assert.Equal(t, 19, tbl.Cursor())
	tbl.MoveDown(1)
	assert.Equal(t, 19, tbl.Cursor())

	tbl.PageUp()
	assert.Equal(t, 14, tbl.Cursor())

	tbl.GotoTop()
	assert.Equal(t, 0, tbl.Cursor())
}

func TestTable_SetRowsClampsCursor(t *testing.T) {
	tbl := newTestTable(10)
	tbl.GotoBottom()
	require.Equal(t, 9, tbl.Cursor())

	tbl.SetRows([]Row{{{Text: "only"}}})
	assert.Equal(t, 0, tbl.Cursor())

	tbl.SetRows(nil)
	assert.Equal(t, -1, tbl.Cursor())
	assert.Equal(t, 0, tbl.Len())
}

func TestTable_ViewShowsVisibleWindow(t *testing.T) {
	tbl := newTestTable(20)
	tbl.SetSize(40, 3)
	tbl.MoveDown(10)

	view := tbl.View()
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "M-010")
	assert.NotContains(t, view, "M-000")
	assert.NotContains(t, view, "M-015")
	assert.Contains(t, view, "Đorđe Čolić")
}

func TestTable_ViewEmpty(t *testing.T) {
	tbl := newTestTable(0)
	tbl.SetEmptyText("No data")
	assert.True(t, strings.Contains(tbl.View(), "No data"))
}

func TestTable_TruncatesWideText(t *testing.T) {
	tbl := NewTable(styles.NewTheme("dark"), Column{Title: "T", Width: 5})
	tbl.SetRows([]Row{{{Text: "Na Drini ćuprija"}}})
	view := tbl.View()
	assert.Contains(t, view, "Na D…")
	assert.NotContains(t, view, "ćuprija")
}
