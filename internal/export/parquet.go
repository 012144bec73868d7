// Package export encodes analytical records as parquet and ships them to S3
// under a run-partitioned prefix that Athena reads.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/tyler180/injury-windows/internal/fpros"
	"github.com/tyler180/injury-windows/internal/injury"
	"github.com/tyler180/injury-windows/internal/report"
)

// Row is one analytical record flattened for the injury_windows table.
type Row struct {
	Subject      string   `parquet:"subject"`
	Slug         string   `parquet:"slug"`
	InjuryWeek   string   `parquet:"injury_week"`
	InjurySeason *int32   `parquet:"injury_season,optional"`
	Scoring      string   `parquet:"scoring"`
	Before1      float64  `parquet:"before_1"`
	Before2      float64  `parquet:"before_2"`
	Before3      float64  `parquet:"before_3"`
	Before4      float64  `parquet:"before_4"`
	Before5      float64  `parquet:"before_5"`
	Before6      float64  `parquet:"before_6"`
	PriorGames   int32    `parquet:"prior_games"`
	PriorAvg     *float64 `parquet:"prior_avg,optional"`
	After1       *float64 `parquet:"after_1,optional"`
	After2       *float64 `parquet:"after_2,optional"`
	After3       *float64 `parquet:"after_3,optional"`
	After4       *float64 `parquet:"after_4,optional"`
	After5       *float64 `parquet:"after_5,optional"`
	After6       *float64 `parquet:"after_6,optional"`
	ReturnWeek   *string  `parquet:"return_week,optional"`
	WeeksMissed  *int32   `parquet:"weeks_missed,optional"`
	Placeholder  bool     `parquet:"placeholder"`
}

// Schema of Row, for the Athena DDL and tests.
func Schema() *parquet.Schema { return parquet.SchemaOf(new(Row)) }

// NewRow flattens a record. The run stamp is not a column; it is the
// run=<stamp> partition in the object key.
func NewRow(r report.Record) Row {
	row := Row{
		Subject:     r.Subject,
		Slug:        fpros.Slug(r.Subject),
		InjuryWeek:  r.InjuryWeek,
		Scoring:     r.Scoring,
		Before1:     r.Before[0],
		Before2:     r.Before[1],
		Before3:     r.Before[2],
		Before4:     r.Before[3],
		Before5:     r.Before[4],
		Before6:     r.Before[5],
		PriorGames:  int32(len(r.PriorGames)),
		Placeholder: r.Placeholder,
	}
	if p, err := injury.ParseLabel(r.InjuryWeek); err == nil {
		y := int32(p.Year)
		row.InjurySeason = &y
	}
	if len(r.PriorGames) > 0 {
		avg := report.Mean(r.PriorGames).Mean
		row.PriorAvg = &avg
	}
	after := []**float64{&row.After1, &row.After2, &row.After3, &row.After4, &row.After5, &row.After6}
	for i, v := range r.After {
		if i >= len(after) {
			break
		}
		v := v
		*after[i] = &v
	}
	if r.ReturnWeek != "" {
		rw := r.ReturnWeek
		row.ReturnWeek = &rw
	}
	if r.WeeksMissed != nil {
		m := int32(*r.WeeksMissed)
		row.WeeksMissed = &m
	}
	return row
}

// WriteParquet encodes rows with snappy compression.
func WriteParquet(w io.Writer, rows []Row) error {
	pw := parquet.NewGenericWriter[Row](w, parquet.Compression(&parquet.Snappy))
	if _, err := pw.Write(rows); err != nil {
		_ = pw.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// Encode flattens and encodes records in one step.
func Encode(recs []report.Record) ([]byte, error) {
	rows := make([]Row, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, NewRow(r))
	}
	var buf bytes.Buffer
	if err := WriteParquet(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
