package fpros

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Status is the outcome of one scheduled week.
type Status int

const (
	Skipped Status = iota
	Played
	Bye
)

func (s Status) String() string {
	switch s {
	case Played:
		return "Played"
	case Bye:
		return "BYE"
	default:
		return "Skipped"
	}
}

// Key orders weeks across seasons: (Season, Week) lexicographically.
type Key struct {
	Season int
	Week   int
}

func (k Key) Less(o Key) bool {
	if k.Season != o.Season {
		return k.Season < o.Season
	}
	return k.Week < o.Week
}

func (k Key) String() string { return fmt.Sprintf("Week %d, %d", k.Week, k.Season) }

// WeekRecord is one classified row of a season game log.
// Points is only meaningful when Status == Played.
type WeekRecord struct {
	Season int
	Week   int
	Status Status
	Points float64
}

func (r WeekRecord) Key() Key { return Key{Season: r.Season, Week: r.Week} }

// FantasyPoints returns the point value and whether one exists.
func (r WeekRecord) FantasyPoints() (float64, bool) {
	if r.Status != Played {
		return 0, false
	}
	return r.Points, true
}

// Scoring labels surfaced in reports; descriptive only.
const (
	ScoringHalfPPR  = "Half-PPR"
	ScoringStandard = "Standard"
	ScoringNone     = "N/A"
)

// SortRecords sorts ascending by (Season, Week); stable so duplicate keys keep scrape order.
func SortRecords(rows []WeekRecord) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Key().Less(rows[j].Key()) })
}

func hasPlayed(rows []WeekRecord) bool {
	for _, r := range rows {
		if r.Status == Played {
			return true
		}
	}
	return false
}

// parsePoints treats blanks, dashes and anything non-numeric as absent, never as zero.
func parsePoints(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "-" || s == "—" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
