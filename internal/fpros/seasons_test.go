package fpros

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyler180/injury-windows/internal/config"
)

func TestSeasonRange(t *testing.T) {
	s := testScraper(&fakeSite{})
	cases := []struct {
		year       int
		start, end int
	}{
		{2021, 2016, 2021},
		{2003, 2000, 2003},
		{2025, 2020, 2025},
		{2026, 2021, 2027},
	}
	for _, c := range cases {
		start, end := s.SeasonRange(c.year)
		assert.Equal(t, c.start, start, "start for %d", c.year)
		assert.Equal(t, c.end, end, "end for %d", c.year)
	}
}

func TestSeasonRange_ScanToForwardCap(t *testing.T) {
	s := testScraper(&fakeSite{}, func(e *config.Engine) {
		e.ScanToForwardCap = true
		e.BackYearLimit = 2
	})
	start, end := s.SeasonRange(2021)
	assert.Equal(t, 2019, start)
	assert.Equal(t, 2025, end)
}

func TestCollectTimeline_MergesAndSorts(t *testing.T) {
	site := &fakeSite{pages: map[string]string{
		SeasonURL(testBase, 2020, "HALF"): logPage(4.0, 5.0),
		SeasonURL(testBase, 2021, ""):     logPage(nil, 8.0),
		SeasonURL(testBase, 2022, "HALF"): logPage(6.0),
	}}
	s := testScraper(site, func(e *config.Engine) { e.BackYearLimit = 2 })

	tl, err := s.CollectTimeline(context.Background(), testBase, 2022)
	require.NoError(t, err)

	keys := make([]Key, 0, len(tl.Records))
	for _, r := range tl.Records {
		keys = append(keys, r.Key())
	}
	assert.Equal(t, []Key{{2020, 1}, {2020, 2}, {2021, 1}, {2021, 2}, {2022, 1}}, keys)
	assert.Equal(t, ScoringHalfPPR, tl.Scoring)
	assert.Len(t, tl.Seasons, 3)
}

func TestDedupe_KeepsFirstPerWeek(t *testing.T) {
	rows := []WeekRecord{
		{Season: 2021, Week: 2, Status: Played, Points: 9},
		{Season: 2020, Week: 17, Status: Bye},
		{Season: 2021, Week: 2, Status: Skipped},
		{Season: 2021, Week: 1, Status: Played, Points: 3},
	}
	got := dedupe(rows)
	require.Len(t, got, 3)
	assert.Equal(t, Key{2020, 17}, got[0].Key())
	assert.Equal(t, Key{2021, 1}, got[1].Key())
	assert.Equal(t, WeekRecord{Season: 2021, Week: 2, Status: Played, Points: 9}, got[2])
}

func TestCollectTimeline_Pacing(t *testing.T) {
	s := testScraper(&fakeSite{}, func(e *config.Engine) {
		e.BackYearLimit = 2
		e.RequestPacingDelay = 40 * time.Millisecond
	})
	start := time.Now()
	_, err := s.CollectTimeline(context.Background(), testBase, 2021)
	require.NoError(t, err)
	// three seasons, two gaps
	assert.GreaterOrEqual(t, time.Since(start), 70*time.Millisecond)
}

func TestCollectTimeline_Cancelled(t *testing.T) {
	s := testScraper(&fakeSite{}, func(e *config.Engine) { e.RequestPacingDelay = time.Hour })
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := s.CollectTimeline(ctx, testBase, 2021)
	assert.Error(t, err)
}
