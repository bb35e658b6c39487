package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/olekukonko/tablewriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func sampleTable() *Table {
	return &Table{
		Header: []string{"Id", "Size", "Zone"},
		Rows: [][]string{
			{"b-2", "10", "zone-a"},
			{"a-1", "2", "zone-c"},
			{"c-3", "100", "zone-b"},
		},
		SortBy: "Zone",
	}
}

func render(t *testing.T, table *Table, sortColumn string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, table, sortColumn))
	return buf.String()
}

// order returns the position of each needle in s.
func order(s string, needles ...string) []int {
	pos := make([]int, len(needles))
	for i, n := range needles {
		pos[i] = strings.Index(s, n)
	}
	return pos
}

func assertOrdered(t *testing.T, out string, needles ...string) {
	t.Helper()
	pos := order(out, needles...)
	for i, p := range pos {
		require.NotEqual(t, -1, p, "missing %q", needles[i])
		if i > 0 {
			assert.Less(t, pos[i-1], p, "%q should come before %q", needles[i-1], needles[i])
		}
	}
}

func TestRender_BogusSortFallsBackToFirstColumn(t *testing.T) {
	bogus := render(t, sampleTable(), "Bogus")
	first := render(t, sampleTable(), "Id")

	assert.Equal(t, first, bogus)
	assertOrdered(t, bogus, "a-1", "b-2", "c-3")
}

func TestRender_EmptySortUsesTableDefault(t *testing.T) {
	out := render(t, sampleTable(), "")
	assertOrdered(t, out, "zone-a", "zone-b", "zone-c")
}

func TestRender_SortIsLexicographic(t *testing.T) {
	out := render(t, sampleTable(), "Size")
	// "10" < "100" < "2" as strings.
	assertOrdered(t, out, "b-2", "c-3", "a-1")
}

func TestRender_FixedSortIgnoresRequest(t *testing.T) {
	table := sampleTable()
	table.SortBy = "Id"
	table.FixedSort = true

	out := render(t, table, "Zone")
	assertOrdered(t, out, "a-1", "b-2", "c-3")
}

func TestRender_TiesBrokenByRestOfRow(t *testing.T) {
	table := &Table{
		Header: []string{"VolumeId", "InstanceId"},
		Rows:   [][]string{{"vol-c", ""}, {"vol-a", ""}, {"vol-b", "i-1"}, {"vol-0", "i-1"}},
	}
	out := render(t, table, "InstanceId")
	assertOrdered(t, out, "vol-a", "vol-c", "vol-0", "vol-b")
}

func TestRender_DuplicateRowsKept(t *testing.T) {
	table := &Table{
		Header: []string{"Key", "Value"},
		Rows:   [][]string{{"k", "v"}, {"k", "v"}},
	}
	out := render(t, table, "Key")
	assert.Equal(t, 2, strings.Count(out, " v "))
}

func TestRender_SingleWrite(t *testing.T) {
	w := &countingWriter{}
	require.NoError(t, Render(w, sampleTable(), ""))
	assert.Equal(t, 1, w.writes)
}

func TestRender_HeaderKeptVerbatim(t *testing.T) {
	out := render(t, &Table{Header: []string{"InstanceId", "Tag_Name"}, Rows: [][]string{{"i-1", "web"}}}, "")
	assert.Contains(t, out, "InstanceId")
	assert.Contains(t, out, "Tag_Name")
	assert.NotContains(t, out, "INSTANCEID")
}

func TestRender_MultiLineCells(t *testing.T) {
	table := &Table{
		Header: []string{"GroupId", "InBound"},
		Rows:   [][]string{{"sg-1", "10.0.0.0/8 (22 -> tcp/22)\n0.0.0.0/0 (443 -> tcp/443)"}},
		Rules:  RulesAll,
	}
	out := render(t, table, "")

	lines := strings.Split(out, "\n")
	var first, second int
	for n, line := range lines {
		if strings.Contains(line, "10.0.0.0/8") {
			first = n
		}
		if strings.Contains(line, "0.0.0.0/0 (443") {
			second = n
		}
	}
	assert.Equal(t, first+1, second)
}

func TestRender_RulesPolicy(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}, {"c"}}
	lineCount := func(r Rules) int {
		out := render(t, &Table{Header: []string{"Col"}, Rows: rows, Rules: r}, "")
		return strings.Count(out, "\n")
	}

	frame := lineCount(RulesFrame)
	all := lineCount(RulesAll)
	none := lineCount(RulesNone)

	assert.Greater(t, all, frame)
	assert.Greater(t, frame, none)
}

func TestRender_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, &Table{}, ""))

	bad := &Table{Header: []string{"A", "B"}, Rows: [][]string{{"only-one"}}}
	assert.Error(t, Render(&buf, bad, ""))
	assert.Zero(t, buf.Len())
}

func TestAlignments(t *testing.T) {
	table := &Table{
		Header: []string{"Name", "Size", "Zone"},
		Left:   []string{"Name", "NotAColumn"},
		Right:  []string{"Size"},
	}
	assert.Equal(t, []int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_CENTER}, table.alignments())
}
