package report

import (
	"math"

	"github.com/tyler180/injury-windows/internal/fpros"
)

// Average of a run of games, rounded to two decimals.
type Average struct {
	Total float64
	Count int
	Mean  float64
}

func Mean(games []fpros.WeekRecord) Average {
	var a Average
	for _, g := range games {
		if p, ok := g.FantasyPoints(); ok {
			a.Total += p
			a.Count++
		}
	}
	if a.Count == 0 {
		return Average{}
	}
	a.Total = round2(a.Total)
	a.Mean = round2(a.Total / float64(a.Count))
	return a
}

// Segment is a labelled slice of a window with its average.
type Segment struct {
	Label string
	Games []fpros.WeekRecord
	Avg   Average

	// OK is false when the window is too short to fill the segment.
	OK bool
}

// Segments returns the prior window followed by after games 2-3 and 4-6.
// The after segments need every one of their games present.
func (r Record) Segments() []Segment {
	prior := Segment{Label: "Previous games", Games: r.PriorGames, OK: len(r.PriorGames) > 0}
	prior.Avg = Mean(prior.Games)
	return []Segment{
		prior,
		afterSegment("Games 2-3 after injury", r.AfterGames, 1, 3),
		afterSegment("Games 4-6 after injury", r.AfterGames, 3, 6),
	}
}

func afterSegment(label string, games []fpros.WeekRecord, from, to int) Segment {
	s := Segment{Label: label}
	if len(games) < to {
		return s
	}
	s.Games = games[from:to]
	s.Avg = Mean(s.Games)
	s.OK = true
	return s
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
