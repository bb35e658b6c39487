// Package report turns resource documents into text tables and detail dumps.
package report

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
)

// Rules selects which horizontal lines a table draws.
type Rules int

const (
	// RulesFrame draws the border and the header separator.
	RulesFrame Rules = iota
	// RulesHeader draws only the header separator.
	RulesHeader
	// RulesAll draws a line after every row.
	RulesAll
	// RulesNone draws no horizontal lines.
	RulesNone
)

// Table is a report ready to render. Rows hold one cell per header column;
// a cell may span several lines.
type Table struct {
	Header []string
	Rows   [][]string
	Left   []string
	Right  []string
	Rules  Rules

	// SortBy is used when no sort column is requested.
	SortBy string
	// FixedSort makes SortBy win over any requested column.
	FixedSort bool
}

// Append adds a row.
func (t *Table) Append(row ...string) {
	t.Rows = append(t.Rows, row)
}

// sortIndex resolves the column rows are ordered by. Unknown names fall
// back to the first column.
func (t *Table) sortIndex(requested string) int {
	name := requested
	if name == "" || t.FixedSort {
		name = t.SortBy
	}
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return 0
}

// Render sorts t by sortColumn and writes it to w in a single write.
func Render(w io.Writer, t *Table, sortColumn string) error {
	if len(t.Header) == 0 {
		return fmt.Errorf("render table: empty header")
	}

	col := t.sortIndex(sortColumn)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			return fmt.Errorf("render table: row %d has %d cells, header has %d", i, len(row), len(t.Header))
		}
		rows[i] = row
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rowLess(rows[i], rows[j], col)
	})

	var buf bytes.Buffer
	tw := tablewriter.NewWriter(&buf)
	tw.SetHeader(t.Header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetColumnAlignment(t.alignments())

	switch t.Rules {
	case RulesHeader:
		tw.SetBorder(false)
		tw.SetHeaderLine(true)
	case RulesAll:
		tw.SetBorder(true)
		tw.SetRowLine(true)
	case RulesNone:
		tw.SetBorder(false)
		tw.SetHeaderLine(false)
	default:
		tw.SetBorder(true)
		tw.SetHeaderLine(true)
	}

	tw.AppendBulk(rows)
	tw.Render()

	_, err := w.Write(buf.Bytes())
	return err
}

// rowLess orders by the sort column, then by the whole row left to right.
func rowLess(a, b []string, col int) bool {
	if a[col] != b[col] {
		return a[col] < b[col]
	}
	for k := range a {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return false
}

func (t *Table) alignments() []int {
	align := make([]int, len(t.Header))
	for i, h := range t.Header {
		align[i] = tablewriter.ALIGN_CENTER
		if contains(t.Left, h) {
			align[i] = tablewriter.ALIGN_LEFT
		}
		if contains(t.Right, h) {
			align[i] = tablewriter.ALIGN_RIGHT
		}
	}
	return align
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
