// Package window selects the games around an injury point: a gap-tolerant
// prior window, a played-only after window, and the missed weeks between.
package window

import (
	"github.com/tyler180/injury-windows/internal/config"
	"github.com/tyler180/injury-windows/internal/fpros"
)

// Options bound the windows. Zero values are not defaulted; use FromEngine.
type Options struct {
	MinPriorGames            int
	MaxMissedWeeksBeforeGate int
	MaxGames                 int
}

func FromEngine(e config.Engine) Options {
	return Options{
		MinPriorGames:            e.MinPriorGames,
		MaxMissedWeeksBeforeGate: e.MaxMissedWeeksBeforeGate,
		MaxGames:                 e.MaxWindowGames,
	}
}

// State of a backward prior-window scan.
type State int

const (
	BelowMinimum State = iota
	AboveMinimum
	Halted
)

func (s State) String() string {
	switch s {
	case BelowMinimum:
		return "accumulating-below-minimum"
	case AboveMinimum:
		return "accumulating-above-minimum"
	default:
		return "halted"
	}
}

// PriorScan consumes records newest-first. Played games are banked and reset
// the gap; skipped weeks grow the gap; byes are ignored. Once the minimum is
// banked a gap above the limit halts the scan, as does a full window.
type PriorScan struct {
	opts  Options
	state State
	gap   int
	games []fpros.WeekRecord
}

func NewPriorScan(opts Options) *PriorScan {
	s := &PriorScan{opts: opts}
	s.state = s.settle()
	return s
}

func (s *PriorScan) State() State { return s.state }

// Gap is the current run of consecutive skipped weeks.
func (s *PriorScan) Gap() int { return s.gap }

// Step feeds the next older record and returns the resulting state.
// Records fed after halting are ignored.
func (s *PriorScan) Step(r fpros.WeekRecord) State {
	if s.state == Halted {
		return s.state
	}
	switch r.Status {
	case fpros.Played:
		s.games = append(s.games, r)
		s.gap = 0
	case fpros.Bye:
	default:
		s.gap++
	}
	s.state = s.settle()
	return s.state
}

func (s *PriorScan) settle() State {
	n := len(s.games)
	switch {
	case n >= s.opts.MaxGames:
		return Halted
	case n >= s.opts.MinPriorGames && s.gap > s.opts.MaxMissedWeeksBeforeGate:
		return Halted
	case n >= s.opts.MinPriorGames:
		return AboveMinimum
	default:
		return BelowMinimum
	}
}

// Games returns the banked games in ascending order.
func (s *PriorScan) Games() []fpros.WeekRecord {
	out := make([]fpros.WeekRecord, len(s.games))
	for i, r := range s.games {
		out[len(out)-1-i] = r
	}
	return out
}

// Prior selects up to opts.MaxGames played games strictly before pivot.
func Prior(timeline []fpros.WeekRecord, pivot fpros.Key, opts Options) []fpros.WeekRecord {
	rows := sorted(timeline)
	scan := NewPriorScan(opts)
	for i := len(rows) - 1; i >= 0 && scan.State() != Halted; i-- {
		if !rows[i].Key().Less(pivot) {
			continue
		}
		scan.Step(rows[i])
	}
	return scan.Games()
}

func sorted(timeline []fpros.WeekRecord) []fpros.WeekRecord {
	rows := append([]fpros.WeekRecord(nil), timeline...)
	fpros.SortRecords(rows)
	return rows
}
