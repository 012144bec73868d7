package materializer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
)

// Execer runs Athena statements; *ath.Runner satisfies it.
type Execer interface {
	ExecAndWait(ctx context.Context, sql string) (*types.QueryExecution, error)
	ScalarInt(ctx context.Context, sql string) (int64, error)
}

type Result struct {
	Table    string   `json:"table"`
	QueryIDs []string `json:"query_ids"`
	RowCount int64    `json:"row_count"`
}

// Run declares the source table, picks up new partitions and rebuilds the summary.
func Run(ctx context.Context, ex Execer, db, location string, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	res := Result{Table: db + "." + TableName}
	steps := []struct {
		name string
		sql  string
	}{
		{"create source", BuildCreateSource(db, location)},
		{"repair partitions", BuildRepair(db)},
		{"drop summary", BuildDrop(db)},
		{"ctas summary", BuildCTAS(db)},
	}
	for _, s := range steps {
		qe, err := ex.ExecAndWait(ctx, s.sql)
		if err != nil {
			return res, fmt.Errorf("%s: %w", s.name, err)
		}
		res.QueryIDs = append(res.QueryIDs, aws.ToString(qe.QueryExecutionId))
		logger.Info("materializer step done", "step", s.name, "qid", aws.ToString(qe.QueryExecutionId))
	}
	n, err := ex.ScalarInt(ctx, BuildCount(db))
	if err != nil {
		return res, fmt.Errorf("count summary rows: %w", err)
	}
	res.RowCount = n
	logger.Info("materialized", "table", res.Table, "rows", n)
	return res, nil
}
