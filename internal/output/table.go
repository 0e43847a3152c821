package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// lineWidth is the column budget for tables and score bars; 0 is unbounded.
var lineWidth = 80

// minLineWidth is the narrowest budget SetWidth honours.
const minLineWidth = 40

// SetWidth sets the column budget. Values under 40 remove the limit.
func SetWidth(n int) {
	if n < minLineWidth {
		n = 0
	}
	lineWidth = n
}

// Width returns the column budget, 0 when unbounded.
func Width() int {
	return lineWidth
}

const (
	columnGap = "  "

	// minColumn is how far a column may shrink to fit the budget.
	minColumn = 6
)

// Table lays rows out in aligned columns under a styled header. Columns
// that push a line past the budget are shrunk, widest first, and their
// cells cut with an ellipsis.
type Table struct {
	headers []string
	rows    [][]string
	right   map[int]bool
	keep    map[int]bool
}

// NewTable starts a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, right: map[int]bool{}, keep: map[int]bool{}}
}

// AlignRight right-aligns the given columns, for numbers.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

// Keep exempts the given columns from shrinking, for values such as ids
// that are useless when cut.
func (t *Table) Keep(cols ...int) *Table {
	for _, c := range cols {
		t.keep[c] = true
	}
	return t
}

// AddRow appends a row. Missing cells are blank; extra values are dropped.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	copy(row, values)
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render returns the table text, one line per row, each ending in "\n".
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}
	widths := t.columnWidths(lineWidth)

	var sb strings.Builder
	t.writeLine(&sb, t.headers, widths, StyleHeader.Render)

	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("─", w)
	}
	t.writeLine(&sb, rules, widths, StyleMuted.Render)

	for _, row := range t.rows {
		t.writeLine(&sb, row, widths, nil)
	}
	return sb.String()
}

func (t *Table) writeLine(sb *strings.Builder, cells []string, widths []int, style func(...string) string) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString(columnGap)
		}
		cell = fitCell(cell, widths[i], t.right[i])
		if style != nil {
			cell = style(cell)
		}
		sb.WriteString(cell)
	}
	sb.WriteByte('\n')
}

// columnWidths sizes each column to its widest cell, then takes space from
// the widest columns that are not kept until the line fits budget.
func (t *Table) columnWidths(budget int) []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = visualLen(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], visualLen(cell))
		}
	}
	if budget <= 0 {
		return widths
	}

	total := len(columnGap) * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	for total > budget {
		widest := -1
		for i, w := range widths {
			if !t.keep[i] && (widest < 0 || w > widths[widest]) {
				widest = i
			}
		}
		if widest < 0 || widths[widest] <= minColumn {
			break
		}
		cut := min(total-budget, widths[widest]-minColumn)
		widths[widest] -= cut
		total -= cut
	}
	return widths
}

// fitCell pads or cuts s to exactly width printed columns.
func fitCell(s string, width int, right bool) string {
	n := visualLen(s)
	if n > width {
		return lipgloss.NewStyle().MaxWidth(width-1).Render(s) + "…"
	}
	if right {
		return strings.Repeat(" ", width-n) + s
	}
	return pad(s, width)
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// Print writes the table to w.
func (t *Table) Print(w io.Writer) {
	_, _ = fmt.Fprint(w, t.Render())
}

// visualLen is the printed width of s; ANSI sequences take no space and
// wide runes take two.
func visualLen(s string) int {
	return lipgloss.Width(s)
}

// pad appends spaces until s prints width columns. Longer strings are
// returned unchanged.
func pad(s string, width int) string {
	if n := visualLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
