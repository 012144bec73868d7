package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyler180/injury-windows/internal/fpros"
	"github.com/tyler180/injury-windows/internal/report"
	"github.com/tyler180/injury-windows/internal/window"
)

func sampleRecords() []report.Record {
	ret := fpros.WeekRecord{Season: 2021, Week: 9, Status: fpros.Played, Points: 11}
	full := report.Build(
		report.Subject{Name: "Cooper Kupp", InjuryLabel: "Week 5, 2021"},
		fpros.ScoringHalfPPR,
		window.Result{
			Prior: []fpros.WeekRecord{
				{Season: 2021, Week: 3, Status: fpros.Played, Points: 4},
				{Season: 2021, Week: 4, Status: fpros.Played, Points: 8},
			},
			After:       []fpros.WeekRecord{ret, {Season: 2021, Week: 10, Status: fpros.Played, Points: 7}},
			Return:      &ret,
			WeeksMissed: 2,
		},
	)
	return []report.Record{full, report.Placeholder(report.Subject{Name: "Nobody", InjuryLabel: "someday"})}
}

func TestSchemaColumns(t *testing.T) {
	var names []string
	for _, f := range Schema().Fields() {
		names = append(names, f.Name())
	}
	assert.Contains(t, names, "injury_season")
	assert.Contains(t, names, "before_6")
	assert.Contains(t, names, "after_1")
	assert.Contains(t, names, "weeks_missed")

	for _, f := range Schema().Fields() {
		switch f.Name() {
		case "after_1", "weeks_missed", "return_week", "injury_season":
			assert.True(t, f.Optional(), f.Name())
		case "before_1", "subject":
			assert.False(t, f.Optional(), f.Name())
		}
	}
}

func TestNewRow(t *testing.T) {
	recs := sampleRecords()

	row := NewRow(recs[0])
	assert.Equal(t, "cooper-kupp", row.Slug)
	require.NotNil(t, row.InjurySeason)
	assert.EqualValues(t, 2021, *row.InjurySeason)
	assert.Equal(t, 4.0, row.Before1)
	assert.EqualValues(t, 2, row.PriorGames)
	require.NotNil(t, row.PriorAvg)
	assert.Equal(t, 6.0, *row.PriorAvg)
	require.NotNil(t, row.After2)
	assert.Equal(t, 7.0, *row.After2)
	assert.Nil(t, row.After3)
	require.NotNil(t, row.WeeksMissed)
	assert.EqualValues(t, 2, *row.WeeksMissed)

	ph := NewRow(recs[1])
	assert.Nil(t, ph.InjurySeason)
	assert.Nil(t, ph.PriorAvg)
	assert.Nil(t, ph.After1)
	assert.Nil(t, ph.ReturnWeek)
	assert.True(t, ph.Placeholder)
}

func TestEncodeRoundTrip(t *testing.T) {
	b, err := Encode(sampleRecords())
	require.NoError(t, err)

	reader := parquet.NewGenericReader[Row](bytes.NewReader(b))
	defer reader.Close()

	rows := make([]Row, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n)
	assert.Equal(t, "Cooper Kupp", rows[0].Subject)
	require.NotNil(t, rows[0].ReturnWeek)
	assert.Equal(t, "Week 9, 2021", *rows[0].ReturnWeek)
	assert.Nil(t, rows[1].WeeksMissed)
}

type fakeS3 struct {
	key  string
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.key = aws.ToString(in.Key)
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestPublish(t *testing.T) {
	fs := &fakeS3{}
	up := NewUploader(fs, "bkt", "/curated/", nil)
	now := time.Date(2025, 9, 14, 18, 30, 5, 0, time.UTC)

	key, err := up.Publish(context.Background(), sampleRecords(), now)
	require.NoError(t, err)
	assert.Equal(t, "curated/injury_windows/run=20250914T183005Z/records.parquet", key)
	assert.Equal(t, key, fs.key)
	assert.Equal(t, "PAR1", string(fs.body[:4]))
	assert.Equal(t, "s3://bkt/curated/injury_windows/", up.DatasetLocation())
}

func TestPublish_EmptyAndErrors(t *testing.T) {
	fs := &fakeS3{}
	key, err := NewUploader(fs, "b", "p", nil).Publish(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, key)
	assert.Empty(t, fs.key)

	fs.err = errors.New("denied")
	_, err = NewUploader(fs, "b", "p", nil).Publish(context.Background(), sampleRecords(), time.Now())
	assert.ErrorContains(t, err, "denied")
}
