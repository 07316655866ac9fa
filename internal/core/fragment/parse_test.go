package fragment

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const calsFragment = `
<h2>Associated Calibrations</h2>
<p>Found <b>3</b> files.</p>
<table>
  <tr><th></th><th>Filename</th><th>Type</th></tr>
  <tr><td><input type="checkbox" class="mark_associated_cals" name="files" value="N1.fits"></td><td><a href="/file/N1.fits">N1.fits</a></td><td>BIAS</td></tr>
  <tr><td><input type="checkbox" class="mark_associated_cals" name="files" value="N2.fits" disabled></td><td>N2.fits</td><td>FLAT</td></tr>
  <tr><td colspan="3">-- separator --</td></tr>
  <tr><td><input type="checkbox" class="odd mark_associated_cals" name="files" value="N3.fits"></td><td>N3.fits</td><td>ARC</td></tr>
</table>
<input type="button" id="markall_associated_cals" value="Mark All Files">
`

func TestParse_SelectableTable(t *testing.T) {
	content, err := ParseString(calsFragment)
	require.NoError(t, err)
	require.Len(t, content.Tables, 1)

	want := Table{
		GroupID: "associated_cals",
		Header:  []string{"", "Filename", "Type"},
		Rows: []Row{
			{Cells: []string{"", "N1.fits", "BIAS"}, Value: "N1.fits", ItemIndex: 0},
			{Cells: []string{"", "N2.fits", "FLAT"}, Value: "N2.fits", Disabled: true, ItemIndex: 1},
			{Cells: []string{"-- separator --"}, ItemIndex: -1},
			{Cells: []string{"", "N3.fits", "ARC"}, Value: "N3.fits", ItemIndex: 2},
		},
	}

	if diff := cmp.Diff(want, content.Tables[0]); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 3, content.Tables[0].ItemCount())
	assert.Equal(t, "## Associated Calibrations\n\nFound 3 files.", content.Text)
}

func TestParse_TableWithoutGroupIsReadOnly(t *testing.T) {
	content, err := ParseString(`
<table>
  <tr><th>Date</th><th>Observation</th></tr>
  <tr><td>2013-01-01</td><td>GN-2013A-Q-1</td></tr>
  <tr><td><input type="checkbox" name="files" value="x"></td><td>no group class</td></tr>
</table>`)
	require.NoError(t, err)
	require.Len(t, content.Tables, 1)

	table := content.Tables[0]
	assert.False(t, table.Selectable())
	assert.Equal(t, 0, table.ItemCount())
	assert.Empty(t, content.SelectableTables())
	for _, r := range table.Rows {
		assert.False(t, r.Selectable())
	}
}

func TestParse_MultipleGroups(t *testing.T) {
	content, err := ParseString(`
<table><tr><td><input type="checkbox" class="mark_raw" value="r1"></td></tr></table>
<table><tr><td><input type="checkbox" class="mark_customsearch" value="c1"></td></tr>
       <tr><td><input type="checkbox" class="mark_customsearch" value="c2"></td></tr></table>`)
	require.NoError(t, err)

	tables := content.SelectableTables()
	require.Len(t, tables, 2)
	assert.Equal(t, "raw", tables[0].GroupID)
	assert.Equal(t, "customsearch", tables[1].GroupID)

	cs, ok := content.Table("customsearch")
	require.True(t, ok)
	row, ok := cs.RowForItem(1)
	require.True(t, ok)
	assert.Equal(t, "c2", cs.Rows[row].Value)

	_, ok = content.Table("associated_cals")
	assert.False(t, ok)
}

func TestParse_ProseOnly(t *testing.T) {
	content, err := ParseString(`<div><h1>No results</h1><ul><li>one</li><li>two</li></ul><script>alert(1)</script></div>`)
	require.NoError(t, err)

	assert.Empty(t, content.Tables)
	assert.Equal(t, "# No results\n\n- one\n- two", content.Text)
	assert.False(t, content.IsEmpty())
}

func TestParse_Empty(t *testing.T) {
	content, err := ParseString("")
	require.NoError(t, err)
	assert.True(t, content.IsEmpty())
}

func TestGroupFromClass(t *testing.T) {
	tests := []struct {
		class string
		want  string
	}{
		{"mark_raw", "raw"},
		{"foo mark_customsearch bar", "customsearch"},
		{"mark_", ""},
		{"markall_raw", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			assert.Equal(t, tt.want, groupFromClass(tt.class))
		})
	}
}

func TestParse_TablesSharingAGroup(t *testing.T) {
	content, err := ParseString(`
<table><tr><td><input type="checkbox" class="mark_raw" value="a"></td></tr></table>
<table><tr><td><input type="checkbox" class="mark_cal" value="x"></td></tr></table>
<table><tr><td><input type="checkbox" class="mark_raw" value="b"></td></tr>
       <tr><td><input type="checkbox" class="mark_raw" value="c"></td></tr></table>`)
	require.NoError(t, err)
	require.Len(t, content.Tables, 3)

	assert.Equal(t, []string{"raw", "cal"}, content.GroupIDs())
	assert.Equal(t, 1, content.Tables[2].Rows[0].ItemIndex)
	assert.Equal(t, 2, content.Tables[2].Rows[1].ItemIndex)
	assert.Equal(t, 0, content.Tables[1].Rows[0].ItemIndex)

	var values []string
	for _, r := range content.Items("raw") {
		values = append(values, r.Value)
	}
	assert.Equal(t, []string{"a", "b", "c"}, values)
}
