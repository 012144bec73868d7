package fpros

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	tbl := doc.Find("table").First()
	require.Equal(t, 1, tbl.Length())
	return tbl
}

const seasonLog = `<table class="table">
<thead><tr><th>Week</th><th>Opp</th><th>Result</th><th>Rec</th><th>FPTS</th><th>%</th></tr></thead>
<tbody>
<tr><td>Week 1</td><td>DAL</td><td>W 20-17</td><td>5</td><td>14.3</td><td>88%</td></tr>
<tr><td>Week 2</td><td colspan="5">BYE</td></tr>
<tr><td>Week 3</td><td>NYG</td><td>L 10-13</td><td>-</td><td>-</td><td>-</td></tr>
<tr><td>Week 4</td><td>PHI</td><td>W 31-3</td><td>6</td><td>1,002.5</td><td>90%</td></tr>
<tr><td>Totals</td><td></td><td></td><td>11</td><td>1016.8</td><td></td></tr>
<tr><td></td></tr>
</tbody></table>`

func TestClassifyRows_Statuses(t *testing.T) {
	got := ClassifyRows(mustTable(t, seasonLog), 2021)
	require.Len(t, got, 4)

	assert.Equal(t, WeekRecord{Season: 2021, Week: 1, Status: Played, Points: 14.3}, got[0])
	assert.Equal(t, WeekRecord{Season: 2021, Week: 2, Status: Bye}, got[1])
	assert.Equal(t, WeekRecord{Season: 2021, Week: 3, Status: Skipped}, got[2])
	assert.Equal(t, WeekRecord{Season: 2021, Week: 4, Status: Played, Points: 1002.5}, got[3])

	_, ok := got[2].FantasyPoints()
	assert.False(t, ok, "dashes are absent, never zero")
}

func TestClassifyRows_FallbackScan(t *testing.T) {
	// Points column blank; the trailing cells are scanned right to left.
	html := `<table><tr><td>Week 7</td><td>a</td><td>b</td><td>9.5</td><td>12.0</td><td></td><td>n/a</td></tr></table>`
	got := ClassifyRows(mustTable(t, html), 2020)
	require.Len(t, got, 1)
	assert.Equal(t, Played, got[0].Status)
	assert.Equal(t, 12.0, got[0].Points)
}

func TestClassifyRows_FallbackIsBounded(t *testing.T) {
	// A number outside the last four cells is not picked up.
	html := `<table><tr><td>Week 8</td><td>3.0</td><td>x</td><td>y</td><td></td><td>-</td></tr></table>`
	got := ClassifyRows(mustTable(t, html), 2020)
	require.Len(t, got, 1)
	assert.Equal(t, Skipped, got[0].Status)
}

func TestClassifyRows_ByeNeedsWeekLabel(t *testing.T) {
	html := `<table><tbody>
<tr><td>Bye week</td><td></td></tr>
<tr><td>week 9</td><td>BYE</td></tr>
</tbody></table>`
	got := ClassifyRows(mustTable(t, html), 2019)
	require.Len(t, got, 1)
	assert.Equal(t, WeekRecord{Season: 2019, Week: 9, Status: Bye}, got[0])
}

func TestClassifyRows_SkipsUnparseableWeek(t *testing.T) {
	html := `<table><tr><td>Week</td><td>1</td><td>2</td></tr><tr><td>Week X</td><td>1</td><td>2</td></tr><tr><th>Week 1</th></tr></table>`
	assert.Empty(t, ClassifyRows(mustTable(t, html), 2019))
}

func TestParsePoints(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12.5", 12.5, true},
		{" 1,204.1 ", 1204.1, true},
		{"0", 0, true},
		{"-3.2", -3.2, true},
		{"-", 0, false},
		{"", 0, false},
		{"DNP", 0, false},
	}
	for _, c := range cases {
		got, ok := parsePoints(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestClassifyRows_ByeNotMatchedAcrossCells(t *testing.T) {
	html := `<table><tr><td>Week 3</td><td>vs ARI</td><td>W 20-b</td><td>yes</td><td>12.5</td><td>x</td></tr></table>`
	got := ClassifyRows(mustTable(t, html), 2021)
	require.Len(t, got, 1)
	assert.Equal(t, WeekRecord{Season: 2021, Week: 3, Status: Played, Points: 12.5}, got[0])
}
