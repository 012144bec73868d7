package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tyler180/injury-windows/internal/report"
)

// RecordItem is the stored shape of an analytical record.
// PK=Subject (S), SK=InjuryWeek (S)
type RecordItem struct {
	Subject     string    `dynamodbav:"Subject"`
	InjuryWeek  string    `dynamodbav:"InjuryWeek"`
	Scoring     string    `dynamodbav:"Scoring"`
	Before      []float64 `dynamodbav:"Before"`
	After       []float64 `dynamodbav:"After,omitempty"`
	ReturnWeek  string    `dynamodbav:"ReturnWeek,omitempty"`
	WeeksMissed *int      `dynamodbav:"WeeksMissed,omitempty"`
	Placeholder bool      `dynamodbav:"Placeholder"`
	UpdatedAt   int64     `dynamodbav:"UpdatedAt"`
}

func NewRecordItem(r report.Record, now time.Time) RecordItem {
	return RecordItem{
		Subject:     r.Subject,
		InjuryWeek:  r.InjuryWeek,
		Scoring:     r.Scoring,
		Before:      r.Before[:],
		After:       r.After,
		ReturnWeek:  r.ReturnWeek,
		WeeksMissed: r.WeeksMissed,
		Placeholder: r.Placeholder,
		UpdatedAt:   now.Unix(),
	}
}

func PutRecords(ctx context.Context, ddb DynamoDBAPI, table string, recs []report.Record) error {
	if len(recs) == 0 {
		return nil
	}
	now := time.Now()

	for i := 0; i < len(recs); i += maxBatch {
		end := i + maxBatch
		if end > len(recs) {
			end = len(recs)
		}

		reqs := make([]types.WriteRequest, 0, end-i)
		for _, r := range recs[i:end] {
			if r.Subject == "" || r.InjuryWeek == "" {
				continue
			}
			item, err := attributevalue.MarshalMap(NewRecordItem(r, now))
			if err != nil {
				return fmt.Errorf("marshal record %s: %w", r.Subject, err)
			}
			reqs = append(reqs, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		if len(reqs) == 0 {
			continue
		}
		if err := batchWriteWithRetry(ctx, ddb, table, reqs); err != nil {
			return fmt.Errorf("batch write records: %w", err)
		}
	}
	return nil
}
