package fpros

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyler180/injury-windows/internal/config"
)

const testBase = "https://fp.test/nfl/games/some-guy.php"

// fakeSite serves canned pages keyed by URL; anything else is a fetch failure.
type fakeSite struct {
	pages map[string]string
	calls []string
}

func (f *fakeSite) Fetch(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	if p, ok := f.pages[url]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: status 404 for %s", ErrFetch, url)
}

// logPage renders a game log; a nil entry is a skipped week, -1 a bye.
func logPage(points ...any) string {
	var b strings.Builder
	b.WriteString(`<table class="table"><thead><tr><th>Week</th><th>Opp</th><th>FPTS</th><th>%</th></tr></thead><tbody>`)
	for i, p := range points {
		switch v := p.(type) {
		case nil:
			fmt.Fprintf(&b, `<tr><td>Week %d</td><td>OPP</td><td>-</td><td>-</td></tr>`, i+1)
		case float64:
			if v < 0 {
				fmt.Fprintf(&b, `<tr><td>Week %d</td><td>BYE</td><td></td><td></td></tr>`, i+1)
				continue
			}
			fmt.Fprintf(&b, `<tr><td>Week %d</td><td>OPP</td><td>%.1f</td><td>50%%</td></tr>`, i+1, v)
		}
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func testScraper(site *fakeSite, mutate ...func(*config.Engine)) *Scraper {
	e := config.Default().Engine
	e.RequestPacingDelay = 0
	for _, m := range mutate {
		m(&e)
	}
	return NewScraper(site, e, PreferredScoring, nil)
}

func TestResolveSeason_PreferredWithPlayedGames(t *testing.T) {
	site := &fakeSite{pages: map[string]string{
		SeasonURL(testBase, 2021, "HALF"): logPage(10.0, nil),
		SeasonURL(testBase, 2021, ""):     logPage(99.0, 99.0),
	}}
	res := testScraper(site).ResolveSeason(context.Background(), testBase, 2021)

	assert.Equal(t, ScoringHalfPPR, res.Scoring)
	require.Len(t, res.Records, 2)
	assert.Equal(t, 10.0, res.Records[0].Points)
	assert.Len(t, site.calls, 1, "default variant is not fetched")
}

func TestResolveSeason_DefaultWhenPreferredHasNoPlayedGames(t *testing.T) {
	site := &fakeSite{pages: map[string]string{
		SeasonURL(testBase, 2021, "HALF"): logPage(nil, nil, nil),
		SeasonURL(testBase, 2021, ""):     logPage(nil, 7.5, 3.0),
	}}
	res := testScraper(site).ResolveSeason(context.Background(), testBase, 2021)

	assert.Equal(t, ScoringStandard, res.Scoring)
	assert.Equal(t, SeasonURL(testBase, 2021, ""), res.URL)
	played := 0
	for _, r := range res.Records {
		if r.Status == Played {
			played++
		}
	}
	assert.Equal(t, 2, played)
}

func TestResolveSeason_EmptyPreferredTableBeatsEmptyDefault(t *testing.T) {
	site := &fakeSite{pages: map[string]string{
		SeasonURL(testBase, 2021, "HALF"): logPage(nil, -1.0),
		SeasonURL(testBase, 2021, ""):     logPage(nil, nil, nil, nil),
	}}
	res := testScraper(site).ResolveSeason(context.Background(), testBase, 2021)

	assert.Equal(t, SeasonURL(testBase, 2021, "HALF"), res.URL)
	assert.Equal(t, ScoringStandard, res.Scoring)
	assert.Len(t, res.Records, 2)
}

func TestResolveSeason_EmptyPreferredTableKeptWhenDefaultMissing(t *testing.T) {
	site := &fakeSite{pages: map[string]string{
		SeasonURL(testBase, 2021, "HALF"): logPage(nil),
	}}
	res := testScraper(site).ResolveSeason(context.Background(), testBase, 2021)
	assert.Len(t, res.Records, 1)
}

func TestResolveSeason_DefaultTableWithoutPlayedGames(t *testing.T) {
	site := &fakeSite{pages: map[string]string{
		SeasonURL(testBase, 2021, "HALF"): `<html><p>nothing here</p></html>`,
		SeasonURL(testBase, 2021, ""):     logPage(nil, nil),
	}}
	res := testScraper(site).ResolveSeason(context.Background(), testBase, 2021)
	assert.Equal(t, ScoringStandard, res.Scoring)
	assert.Len(t, res.Records, 2)
}

func TestResolveSeason_NothingFound(t *testing.T) {
	res := testScraper(&fakeSite{}).ResolveSeason(context.Background(), testBase, 2021)
	assert.Empty(t, res.Records)
	assert.Equal(t, ScoringNone, res.Scoring)
}
