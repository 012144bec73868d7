package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tyler180/injury-windows/internal/fpros"
)

type DynamoDBAPI interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

const maxBatch = 25

// Timeline rows: PK=SubjectSeason (S, "<slug>#<season>"), SK=Week (N)
func PutTimeline(ctx context.Context, ddb DynamoDBAPI, table, slug string, rows []fpros.WeekRecord) error {
	if len(rows) == 0 {
		return nil
	}
	now := strconv.FormatInt(time.Now().Unix(), 10)

	for i := 0; i < len(rows); i += maxBatch {
		end := i + maxBatch
		if end > len(rows) {
			end = len(rows)
		}

		reqs := make([]types.WriteRequest, 0, end-i)
		for _, r := range rows[i:end] {
			if r.Week <= 0 {
				continue
			}
			season := strconv.Itoa(r.Season)
			item := map[string]types.AttributeValue{
				"SubjectSeason": &types.AttributeValueMemberS{Value: slug + "#" + season}, // PK
				"Week":          &types.AttributeValueMemberN{Value: strconv.Itoa(r.Week)}, // SK
				"Subject":       &types.AttributeValueMemberS{Value: slug},
				"Season":        &types.AttributeValueMemberN{Value: season},
				"Status":        &types.AttributeValueMemberS{Value: r.Status.String()},
				"UpdatedAt":     &types.AttributeValueMemberN{Value: now},
			}
			if pts, ok := r.FantasyPoints(); ok {
				item["Points"] = &types.AttributeValueMemberN{Value: strconv.FormatFloat(pts, 'f', 2, 64)}
			}
			reqs = append(reqs, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		if len(reqs) == 0 {
			continue
		}
		if err := batchWriteWithRetry(ctx, ddb, table, reqs); err != nil {
			return fmt.Errorf("batch write timeline rows: %w", err)
		}
	}
	return nil
}

func batchWriteWithRetry(ctx context.Context, ddb DynamoDBAPI, table string, reqs []types.WriteRequest) error {
	input := &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{table: reqs},
	}
	const maxAttempts = 6
	backoff := 120 * time.Millisecond

	for attempt := 0; attempt < maxAttempts; attempt++ {
		out, err := ddb.BatchWriteItem(ctx, input)
		if err != nil {
			return err
		}
		if len(out.UnprocessedItems) == 0 {
			return nil
		}
		input.RequestItems = out.UnprocessedItems
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 2*time.Second {
			backoff += 120 * time.Millisecond
		}
	}
	return fmt.Errorf("unprocessed items remained after retries for table %s", table)
}
