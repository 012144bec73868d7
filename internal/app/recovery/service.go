package recovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tyler180/injury-windows/internal/config"
	"github.com/tyler180/injury-windows/internal/fpros"
	"github.com/tyler180/injury-windows/internal/injury"
	"github.com/tyler180/injury-windows/internal/report"
	"github.com/tyler180/injury-windows/internal/window"
)

// Prompter supplies a replacement game-log URL when discovery finds nothing.
// Returning ok=false declines and the subject gets a placeholder.
type Prompter interface {
	Override(ctx context.Context, subject, tried string) (url string, ok bool, err error)
}

type Service struct {
	scraper *fpros.Scraper
	baseURL string
	opts    window.Options
	prompt  Prompter
	observe func(Outcome)
	log     *slog.Logger
}

type Option func(*Service)

// WithPrompter enables the interactive override loop.
func WithPrompter(p Prompter) Option { return func(s *Service) { s.prompt = p } }

func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

// WithObserver is called after each subject finishes, in order.
func WithObserver(fn func(Outcome)) Option { return func(s *Service) { s.observe = fn } }

func New(f fpros.Fetcher, cfg config.Config, opts ...Option) *Service {
	s := &Service{
		baseURL: cfg.Fetch.BaseURL,
		opts:    window.FromEngine(cfg.Engine),
		log:     slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	s.scraper = fpros.NewScraper(f, cfg.Engine, cfg.Fetch.PreferredScoring, s.log)
	return s
}

// Run processes subjects one at a time. Only context cancellation and
// prompter I/O errors stop the run; every other problem becomes a placeholder
// and a Failure.
func (s *Service) Run(ctx context.Context, subjects []report.Subject) (Result, error) {
	var res Result
	for _, subj := range subjects {
		out, fail, err := s.Analyze(ctx, subj)
		if err != nil {
			return res, err
		}
		res.Outcomes = append(res.Outcomes, out)
		if fail != nil {
			res.Failures = append(res.Failures, *fail)
		}
		if s.observe != nil {
			s.observe(out)
		}
	}
	s.log.Info("run complete", "subjects", len(res.Outcomes), "failures", len(res.Failures))
	return res, nil
}

// Analyze runs one subject's full pass.
func (s *Service) Analyze(ctx context.Context, subj report.Subject) (Outcome, *report.Failure, error) {
	log := s.log.With("subject", subj.Name, "injury", subj.InjuryLabel)

	point, err := injury.ParseLabel(subj.InjuryLabel)
	if err != nil {
		reason := "bad injury week format: " + subj.InjuryLabel
		if errors.Is(err, injury.ErrUnknownSeason) {
			reason = "no season start date for injury date: " + subj.InjuryLabel
		}
		log.Error("placeholder record", "reason", reason, "err", err)
		return Outcome{Record: report.Placeholder(subj)}, &report.Failure{Subject: subj.Name, Reason: reason}, nil
	}

	slug := fpros.Slug(subj.Name)
	base := fpros.BaseGamesURL(s.baseURL, slug)
	for {
		tl, err := s.scraper.CollectTimeline(ctx, base, point.Year)
		if err != nil {
			return Outcome{}, nil, fmt.Errorf("collect %s: %w", subj.Name, err)
		}
		res := window.Compute(tl.Records, point.Key(), s.opts)
		if len(res.Prior) > 0 || len(res.After) > 0 {
			rec := report.Build(subj, tl.Scoring, res)
			log.Info("subject analysed", "base", base, "scoring", tl.Scoring, "prior", len(res.Prior), "after", len(res.After), "return", rec.ReturnWeek)
			return Outcome{Record: rec, Slug: slug, Timeline: tl}, nil, nil
		}

		log.Warn("no game data", "base", base, "records", len(tl.Records))
		next, ok, err := s.override(ctx, subj.Name, base)
		if err != nil {
			return Outcome{}, nil, err
		}
		if !ok {
			reason := "no game data found"
			if s.prompt != nil {
				reason += " (user skipped)"
			}
			log.Error("placeholder record", "reason", reason)
			return Outcome{Record: report.Placeholder(subj), Slug: slug, Timeline: tl}, &report.Failure{Subject: subj.Name, Reason: reason}, nil
		}
		base = fpros.BaseGamesURL(s.baseURL, next)
	}
}

func (s *Service) override(ctx context.Context, subject, tried string) (string, bool, error) {
	if s.prompt == nil {
		return "", false, nil
	}
	url, ok, err := s.prompt.Override(ctx, subject, tried)
	if err != nil {
		return "", false, fmt.Errorf("override prompt for %s: %w", subject, err)
	}
	return url, ok, nil
}
