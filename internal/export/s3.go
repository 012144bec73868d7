package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tyler180/injury-windows/internal/report"
)

// Dataset is the path segment under the curated prefix.
const Dataset = "injury_windows"

type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Uploader struct {
	cl     S3API
	bucket string
	prefix string
	log    *slog.Logger
}

func NewUploader(cl S3API, bucket, prefix string, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{cl: cl, bucket: bucket, prefix: strings.Trim(prefix, "/"), log: logger}
}

func RunStamp(t time.Time) string { return t.UTC().Format("20060102T150405Z") }

// DatasetLocation is the s3:// root the Athena table points at.
func DatasetLocation(bucket, prefix string) string {
	return "s3://" + bucket + "/" + path.Join(strings.Trim(prefix, "/"), Dataset) + "/"
}

func (u *Uploader) DatasetLocation() string { return DatasetLocation(u.bucket, u.prefix) }

// Key for one run's records object.
func (u *Uploader) Key(run string) string {
	return path.Join(u.prefix, Dataset, "run="+run, "records.parquet")
}

func (u *Uploader) put(ctx context.Context, key string, body []byte) error {
	_, err := u.cl.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/vnd.apache.parquet"),
	})
	return err
}

// Publish encodes recs and uploads them under a fresh run partition. It
// returns the object key; nothing is written for an empty batch.
func (u *Uploader) Publish(ctx context.Context, recs []report.Record, now time.Time) (string, error) {
	if len(recs) == 0 {
		return "", nil
	}
	run := RunStamp(now)
	body, err := Encode(recs)
	if err != nil {
		return "", err
	}
	key := u.Key(run)
	if err := u.put(ctx, key, body); err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", u.bucket, key, err)
	}
	u.log.Info("published records", "bucket", u.bucket, "key", key, "rows", len(recs), "bytes", len(body))
	return key, nil
}
