package materializer

import "fmt"

const (
	// SourceTable is the external table over the published parquet runs.
	SourceTable = "injury_windows"
	TableName   = "injury_recovery_summary"
)

// BuildCreateSource declares the external table over location
// (s3://bucket/prefix/injury_windows/), partitioned by run.
func BuildCreateSource(db, location string) string {
	return fmt.Sprintf(`
CREATE EXTERNAL TABLE IF NOT EXISTS %s.%s (
  subject        string,
  slug           string,
  injury_week    string,
  injury_season  int,
  scoring        string,
  before_1       double,
  before_2       double,
  before_3       double,
  before_4       double,
  before_5       double,
  before_6       double,
  prior_games    int,
  prior_avg      double,
  after_1        double,
  after_2        double,
  after_3        double,
  after_4        double,
  after_5        double,
  after_6        double,
  return_week    string,
  weeks_missed   int,
  placeholder    boolean
)
PARTITIONED BY (run string)
STORED AS PARQUET
LOCATION '%s'
`, db, SourceTable, location)
}

// BuildRepair loads run partitions written since the last call.
func BuildRepair(db string) string {
	return fmt.Sprintf(`MSCK REPAIR TABLE %s.%s`, db, SourceTable)
}

// BuildDrop returns a DROP TABLE IF EXISTS for the materialized table.
func BuildDrop(db string) string {
	return fmt.Sprintf(`DROP TABLE IF EXISTS %s.%s`, db, TableName)
}

// BuildCTAS summarises recoveries per injury season. Each (subject, injury
// week) contributes only its latest run; placeholders are excluded.
func BuildCTAS(db string) string {
	return fmt.Sprintf(`
CREATE TABLE %s.%s
WITH (
  format = 'PARQUET'
) AS
WITH latest AS (
  SELECT
    *,
    ROW_NUMBER() OVER (PARTITION BY subject, injury_week ORDER BY run DESC) AS rn
  FROM %s.%s
  WHERE NOT placeholder
    AND injury_season IS NOT NULL
)
SELECT
  injury_season                        AS injury_season,
  COUNT(*)                             AS subjects,
  ROUND(AVG(prior_avg), 2)             AS avg_prior_points,
  ROUND(AVG(after_1), 2)               AS avg_first_game_points,
  ROUND(AVG(weeks_missed), 2)          AS avg_weeks_missed,
  COUNT(after_1)                       AS returned
FROM latest
WHERE rn = 1
GROUP BY injury_season
`, db, TableName, db, SourceTable)
}

func BuildCount(db string) string {
	return fmt.Sprintf(`SELECT COUNT(*) AS c FROM %s.%s`, db, TableName)
}
