package injury

import (
	"fmt"
	"time"
)

// TableVersion identifies the kickoff table below. Bump it when a season is added.
const TableVersion = "2025.1"

// seasonStarts maps a season to the date of its week-1 kickoff.
// Effective years: 2016 through 2025.
var seasonStarts = map[int]time.Time{
	2016: date(2016, time.September, 8),
	2017: date(2017, time.September, 7),
	2018: date(2018, time.September, 6),
	2019: date(2019, time.September, 5),
	2020: date(2020, time.September, 10),
	2021: date(2021, time.September, 9),
	2022: date(2022, time.September, 8),
	2023: date(2023, time.September, 7),
	2024: date(2024, time.September, 5),
	2025: date(2025, time.September, 4),
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SeasonStart returns the week-1 kickoff for a season.
func SeasonStart(season int) (time.Time, error) {
	t, ok := seasonStarts[season]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %d (table %s)", ErrUnknownSeason, season, TableVersion)
	}
	return t, nil
}

// WeekOf derives the in-season week for a calendar date in the date's own year.
// Dates before kickoff yield week 0.
func WeekOf(d time.Time) (Point, error) {
	year := d.Year()
	start, err := SeasonStart(year)
	if err != nil {
		return Point{}, err
	}
	day := date(year, d.Month(), d.Day())
	if day.Before(start) {
		return Point{Week: 0, Year: year}, nil
	}
	days := int(day.Sub(start).Hours() / 24)
	return Point{Week: days/7 + 1, Year: year}, nil
}
