package fpros

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateTable_PrefersKnownMarkup(t *testing.T) {
	html := `<html><body>
<table id="news"><tr><td>Week 3 waiver wire</td></tr></table>
<div class="mobile-table"><table id="log"><tr><td>Week 1</td><td>10.0</td><td>x</td></tr></table></div>
</body></html>`
	tbl, err := LocateTable(html)
	require.NoError(t, err)
	assert.Equal(t, "log", tbl.AttrOr("id", ""))
}

func TestLocateTable_FallbackScan(t *testing.T) {
	html := `<html><body>
<table class="table" id="ranks"><tr><td>Rank</td></tr></table>
<table id="other"><tr><td>Player</td></tr></table>
<table id="games"><tr><th>Week</th></tr><tr><td>Week 1</td><td>3.1</td><td>x</td></tr></table>
</body></html>`
	tbl, err := LocateTable(html)
	require.NoError(t, err)
	assert.Equal(t, "games", tbl.AttrOr("id", ""))
}

func TestLocateTable_KeywordOnlyInLeadingRows(t *testing.T) {
	html := `<table>
<tr><td>a</td></tr><tr><td>b</td></tr><tr><td>c</td></tr>
<tr><td>d</td></tr><tr><td>e</td></tr><tr><td>f</td></tr>
<tr><td>Week 1</td></tr>
</table>`
	_, err := LocateTable(html)
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestLocateTable_NotFound(t *testing.T) {
	_, err := LocateTable(`<html><body><p>Player not found</p></body></html>`)
	assert.ErrorIs(t, err, ErrNoTable)
}
