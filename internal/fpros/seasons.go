package fpros

import (
	"context"
	"fmt"
)

// Timeline is every week record across the scanned seasons, ascending by (Season, Week).
type Timeline struct {
	Records []WeekRecord
	Seasons []SeasonResult

	// Scoring is the label of the latest season that produced records.
	Scoring string
}

// SeasonRange returns the inclusive years to scan around an injury year.
func (s *Scraper) SeasonRange(injuryYear int) (start, end int) {
	e := s.engine
	start = injuryYear - e.BackYearLimit
	if start < e.EarliestSeason {
		start = e.EarliestSeason
	}
	switch {
	case injuryYear > e.ForwardYearCap:
		end = injuryYear + 1
	case e.ScanToForwardCap:
		end = e.ForwardYearCap
	default:
		end = injuryYear
	}
	return start, end
}

// CollectTimeline resolves each season in range and merges the results.
// Only context cancellation is returned as an error.
func (s *Scraper) CollectTimeline(ctx context.Context, base string, injuryYear int) (Timeline, error) {
	start, end := s.SeasonRange(injuryYear)
	tl := Timeline{Scoring: ScoringNone}
	for y := start; y <= end; y++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return Timeline{}, fmt.Errorf("pacing season %d: %w", y, err)
		}
		res := s.ResolveSeason(ctx, base, y)
		if err := ctx.Err(); err != nil {
			return Timeline{}, err
		}
		tl.Seasons = append(tl.Seasons, res)
		if len(res.Records) > 0 {
			tl.Records = append(tl.Records, res.Records...)
			tl.Scoring = res.Scoring
		}
	}
	tl.Records = dedupe(tl.Records)
	s.log.Info("timeline collected", "base", base, "from", start, "to", end, "records", len(tl.Records), "scoring", tl.Scoring)
	return tl, nil
}

// dedupe sorts and keeps the first record seen for each (Season, Week).
func dedupe(rows []WeekRecord) []WeekRecord {
	SortRecords(rows)
	out := make([]WeekRecord, 0, len(rows))
	for _, r := range rows {
		if n := len(out); n > 0 && out[n-1].Key() == r.Key() {
			continue
		}
		out = append(out, r)
	}
	return out
}
