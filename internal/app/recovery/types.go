package recovery

import (
	"encoding/json"

	"github.com/tyler180/injury-windows/internal/fpros"
	"github.com/tyler180/injury-windows/internal/report"
)

// Event is the Lambda payload.
type Event struct {
	Mode     string         `json:"mode"` // analyze | materialize
	Subjects []SubjectInput `json:"subjects"`
}

type SubjectInput struct {
	Name       string `json:"name"`
	InjuryWeek string `json:"injury_week"`
}

// Raw is used by Lambda entrypoint to avoid tight coupling to the event type at the edge.
type Raw = json.RawMessage

// Outcome is one subject's finished pass.
type Outcome struct {
	Record report.Record

	// Slug and Timeline are empty for placeholders that never reached the source.
	Slug     string
	Timeline fpros.Timeline
}

// Result of a run, in input order.
type Result struct {
	Outcomes []Outcome
	Failures []report.Failure
}

func (r Result) Records() []report.Record {
	out := make([]report.Record, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		out = append(out, o.Record)
	}
	return out
}

// Response is what the Lambda returns.
type Response struct {
	OK       bool             `json:"ok"`
	Mode     string           `json:"mode"`
	Subjects int              `json:"subjects,omitempty"`
	Failures []report.Failure `json:"failures,omitempty"`
	S3Key    string           `json:"s3_key,omitempty"`
	Table    string           `json:"table,omitempty"`
	QueryIDs []string         `json:"query_ids,omitempty"`
	RowCount int64            `json:"row_count,omitempty"`
}
