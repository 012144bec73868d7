package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tyler180/injury-windows/internal/app/recovery"
	"github.com/tyler180/injury-windows/internal/config"
	"github.com/tyler180/injury-windows/internal/fpros"
	"github.com/tyler180/injury-windows/internal/report"
)

type options struct {
	input       string
	output      string
	interactive bool
	quiet       bool

	backYears        int
	forwardCap       int
	scanToForwardCap bool
	minPrior         int
	maxGap           int
	pacing           time.Duration
	logLevel         string
	logFormat        string
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "injury-windows",
		Short: "Build before/after injury game windows from weekly fantasy game logs.",
		Long: `Reads subjects and injury weeks from a spreadsheet, scrapes each subject's
weekly game logs around the injury, and writes the games before and after the
injury plus the weeks missed until return.

Injury weeks may be written "Week 5, 2021" or as a calendar date.

Examples:
  injury-windows --input rib.xlsx --output Fantasy.xlsx
  injury-windows --interactive=false --scan-to-forward-cap --log-format json`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, cfg, opts, stdin, stdout, stderr)
		},
	}

	bindFlags(cmd, opts)
	return cmd
}

func bindFlags(cmd *cobra.Command, opts *options) {
	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "rib.xlsx", "input workbook with PLAYER NAME and Injury Week columns")
	f.StringVarP(&opts.output, "output", "o", "Fantasy.xlsx", "output workbook")
	f.BoolVar(&opts.interactive, "interactive", true, "prompt for a game log URL when none is found")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "skip the per-subject console breakdown")
	f.IntVar(&opts.backYears, "back-years", 0, "seasons to scan before the injury year")
	f.IntVar(&opts.forwardCap, "forward-cap", 0, "last season scanned for injuries up to this year")
	f.BoolVar(&opts.scanToForwardCap, "scan-to-forward-cap", false, "scan through the forward cap instead of stopping at the injury year")
	f.IntVar(&opts.minPrior, "min-prior-games", 0, "played games banked before the gap limit applies")
	f.IntVar(&opts.maxGap, "max-gap", 0, "consecutive missed weeks tolerated once the minimum is banked")
	f.DurationVar(&opts.pacing, "pacing", 0, "delay between season requests")
	f.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&opts.logFormat, "log-format", "", "text or json")
}

// loadConfig applies explicitly set flags over the environment.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	f := cmd.Flags()
	if f.Changed("back-years") {
		cfg.Engine.BackYearLimit = opts.backYears
	}
	if f.Changed("forward-cap") {
		cfg.Engine.ForwardYearCap = opts.forwardCap
	}
	if f.Changed("scan-to-forward-cap") {
		cfg.Engine.ScanToForwardCap = opts.scanToForwardCap
	}
	if f.Changed("min-prior-games") {
		cfg.Engine.MinPriorGames = opts.minPrior
	}
	if f.Changed("max-gap") {
		cfg.Engine.MaxMissedWeeksBeforeGate = opts.maxGap
	}
	if f.Changed("pacing") {
		cfg.Engine.RequestPacingDelay = opts.pacing
	}
	if f.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if f.Changed("log-format") {
		cfg.Logging.Format = opts.logFormat
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg config.Config, opts *options, stdin io.Reader, stdout, stderr io.Writer) error {
	logger := config.NewLogger(cfg.Logging, stderr)
	slog.SetDefault(logger)

	subjects, err := report.ReadSubjectsFile(opts.input, logger)
	if err != nil {
		return err
	}
	logger.Info("loaded subjects", "input", opts.input, "count", len(subjects))

	svcOpts := []recovery.Option{recovery.WithLogger(logger)}
	if opts.interactive {
		svcOpts = append(svcOpts, recovery.WithPrompter(recovery.NewLinePrompter(stdin, stdout)))
	}
	if !opts.quiet {
		svcOpts = append(svcOpts, recovery.WithObserver(func(o recovery.Outcome) {
			if err := report.WriteRecord(stdout, o.Record); err != nil {
				logger.Warn("console output failed", "subject", o.Record.Subject, "err", err)
			}
		}))
	}

	svc := recovery.New(fpros.NewHTTPFetcher(cfg.Fetch, logger), cfg, svcOpts...)
	res, err := svc.Run(ctx, subjects)
	if err != nil {
		return err
	}

	if err := report.SaveWorkbook(opts.output, res.Records()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\nResults saved to %s\n", opts.output)
	report.WriteFailures(stdout, res.Failures)
	return nil
}
