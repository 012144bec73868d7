package recovery

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tyler180/injury-windows/internal/ath"
	"github.com/tyler180/injury-windows/internal/config"
	"github.com/tyler180/injury-windows/internal/export"
	"github.com/tyler180/injury-windows/internal/fpros"
	"github.com/tyler180/injury-windows/internal/materializer"
	"github.com/tyler180/injury-windows/internal/report"
	"github.com/tyler180/injury-windows/internal/store"
)

const (
	ModeAnalyze     = "analyze"
	ModeMaterialize = "materialize"
)

// Sinks are the optional AWS outputs; a nil field disables that output.
type Sinks struct {
	DDB    store.DynamoDBAPI
	S3     export.S3API
	Athena ath.AthenaAPI
}

// LambdaEntrypoint is the single Lambda handler exported from this package.
func LambdaEntrypoint(ctx context.Context, raw Raw) (*Response, error) {
	var e Event
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := config.NewLogger(cfg.Logging, os.Stderr)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	sinks := Sinks{}
	if cfg.Output.RecordsTable != "" || cfg.Output.TimelineTable != "" {
		sinks.DDB = dynamodb.NewFromConfig(awsCfg)
	}
	if cfg.Output.Bucket != "" {
		sinks.S3 = s3.NewFromConfig(awsCfg)
	}
	if cfg.Output.AthenaDB != "" {
		sinks.Athena = athena.NewFromConfig(awsCfg)
	}

	h := &Handler{Config: cfg, Fetcher: fpros.NewHTTPFetcher(cfg.Fetch, logger), Sinks: sinks, Logger: logger}
	return h.Handle(ctx, e)
}

// Handler carries the dependencies of one invocation so tests can swap them.
type Handler struct {
	Config  config.Config
	Fetcher fpros.Fetcher
	Sinks   Sinks
	Logger  *slog.Logger
	Now     func() time.Time

	// AthenaPoll overrides the runner's poll interval.
	AthenaPoll time.Duration
}

func (h *Handler) Handle(ctx context.Context, e Event) (*Response, error) {
	mode := strings.ToLower(strings.TrimSpace(e.Mode))
	if mode == "" {
		mode = ModeAnalyze
	}
	switch mode {
	case ModeAnalyze:
		return h.analyze(ctx, e)
	case ModeMaterialize:
		return h.materialize(ctx)
	default:
		return nil, fmt.Errorf("unknown mode %q", e.Mode)
	}
}

func (h *Handler) analyze(ctx context.Context, e Event) (*Response, error) {
	log := h.logger()
	subjects := make([]report.Subject, 0, len(e.Subjects))
	for i, in := range e.Subjects {
		s := report.Subject{Name: strings.TrimSpace(in.Name), InjuryLabel: strings.TrimSpace(in.InjuryWeek)}
		if s.Name == "" || s.InjuryLabel == "" {
			log.Info("skipping subject", "index", i, "reason", "missing name or injury week")
			continue
		}
		subjects = append(subjects, s)
	}

	// never prompts
	svc := New(h.Fetcher, h.Config, WithLogger(log))
	res, err := svc.Run(ctx, subjects)
	if err != nil {
		return nil, err
	}

	resp := &Response{OK: true, Mode: ModeAnalyze, Subjects: len(res.Outcomes), Failures: res.Failures}
	out := h.Config.Output

	if h.Sinks.DDB != nil && out.RecordsTable != "" {
		if err := store.PutRecords(ctx, h.Sinks.DDB, out.RecordsTable, res.Records()); err != nil {
			return nil, fmt.Errorf("store records: %w", err)
		}
	}
	if h.Sinks.DDB != nil && out.TimelineTable != "" {
		for _, o := range res.Outcomes {
			if o.Slug == "" {
				continue
			}
			if err := store.PutTimeline(ctx, h.Sinks.DDB, out.TimelineTable, o.Slug, o.Timeline.Records); err != nil {
				return nil, fmt.Errorf("store timeline %s: %w", o.Slug, err)
			}
		}
	}
	if h.Sinks.S3 != nil && out.Bucket != "" {
		up := export.NewUploader(h.Sinks.S3, out.Bucket, out.Prefix, log)
		key, err := up.Publish(ctx, res.Records(), h.now())
		if err != nil {
			return nil, fmt.Errorf("publish records: %w", err)
		}
		resp.S3Key = key
	}
	return resp, nil
}

func (h *Handler) materialize(ctx context.Context) (*Response, error) {
	out := h.Config.Output
	if h.Sinks.Athena == nil || out.AthenaDB == "" || out.Bucket == "" {
		return nil, fmt.Errorf("materialize needs athena db and bucket configured")
	}
	log := h.logger()
	runner := &ath.Runner{
		Client:    h.Sinks.Athena,
		Workgroup: out.AthenaWorkgroup,
		Database:  out.AthenaDB,
		OutputS3:  out.AthenaOutput,
		Logger:    log,
		Poll:      h.AthenaPoll,
	}
	location := export.DatasetLocation(out.Bucket, out.Prefix)
	res, err := materializer.Run(ctx, runner, out.AthenaDB, location, log)
	if err != nil {
		return nil, err
	}
	return &Response{OK: true, Mode: ModeMaterialize, Table: res.Table, QueryIDs: res.QueryIDs, RowCount: res.RowCount}, nil
}
