package fpros

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/time/rate"

	"github.com/tyler180/injury-windows/internal/config"
)

// SeasonResult is the resolved game log for one season.
type SeasonResult struct {
	Season  int
	Records []WeekRecord
	Scoring string

	// URL of the variant whose records were kept; empty when nothing was found.
	URL string
}

// Scraper resolves and aggregates season game logs for one subject at a time.
// Season fetches are sequential and paced by a shared limiter.
type Scraper struct {
	fetch     Fetcher
	engine    config.Engine
	preferred string
	limiter   *rate.Limiter
	log       *slog.Logger
}

func NewScraper(f Fetcher, engine config.Engine, preferredScoring string, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if engine.RequestPacingDelay > 0 {
		limit = rate.Every(engine.RequestPacingDelay)
	}
	return &Scraper{
		fetch:     f,
		engine:    engine,
		preferred: preferredScoring,
		limiter:   rate.NewLimiter(limit, 1),
		log:       logger,
	}
}

// ResolveSeason probes the preferred scoring variant, then the site default,
// and keeps whichever carries played games. With no played games anywhere the
// preferred variant's table wins over the default's, labelled Standard.
func (s *Scraper) ResolveSeason(ctx context.Context, base string, season int) SeasonResult {
	prefURL := SeasonURL(base, season, s.preferred)
	prefRows, prefOK := s.load(ctx, prefURL, season)
	if prefOK && hasPlayed(prefRows) {
		return SeasonResult{Season: season, Records: prefRows, Scoring: scoringLabel(s.preferred), URL: prefURL}
	}

	defURL := SeasonURL(base, season, "")
	defRows, defOK := s.load(ctx, defURL, season)
	switch {
	case defOK && hasPlayed(defRows):
		return SeasonResult{Season: season, Records: defRows, Scoring: ScoringStandard, URL: defURL}
	case prefOK:
		// TODO: confirm with product whether an empty preferred table should beat the default's.
		return SeasonResult{Season: season, Records: prefRows, Scoring: ScoringStandard, URL: prefURL}
	case defOK:
		return SeasonResult{Season: season, Records: defRows, Scoring: ScoringStandard, URL: defURL}
	}
	return SeasonResult{Season: season, Scoring: ScoringNone}
}

// load reports false for any fetch failure or a page without a game log.
func (s *Scraper) load(ctx context.Context, url string, season int) ([]WeekRecord, bool) {
	html, err := s.fetch.Fetch(ctx, url)
	if err != nil {
		s.log.Debug("season fetch failed", "url", url, "err", err)
		return nil, false
	}
	table, err := LocateTable(html)
	if err != nil {
		s.log.Debug("no game log", "url", url, "err", err)
		return nil, false
	}
	rows := ClassifyRows(table, season)
	s.log.Debug("classified season", "url", url, "rows", len(rows))
	return rows, true
}

func scoringLabel(q string) string {
	switch strings.ToUpper(strings.TrimSpace(q)) {
	case "HALF":
		return ScoringHalfPPR
	case "PPR":
		return "PPR"
	case "", "STD", "STANDARD":
		return ScoringStandard
	default:
		return q
	}
}
