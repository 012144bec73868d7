// Package report shapes window results into fixed-width analytical records
// and moves them in and out of spreadsheets and the console.
package report

import (
	"strconv"

	"github.com/tyler180/injury-windows/internal/fpros"
	"github.com/tyler180/injury-windows/internal/window"
)

// Slots is the fixed width of the before and after columns.
const Slots = 6

// NotApplicable marks an after slot with no game.
const NotApplicable = "N/A"

// Subject is one input row.
type Subject struct {
	Name        string
	InjuryLabel string
}

// Failure explains why a subject got a placeholder record.
type Failure struct {
	Subject string
	Reason  string
}

// Record is the analytical output for one subject. It is never mutated after Build.
type Record struct {
	Subject    string
	InjuryWeek string
	Scoring    string
	Before     [Slots]float64

	// After holds at most Slots values; missing slots render as NotApplicable.
	After       []float64
	ReturnWeek  string
	WeeksMissed *int
	Placeholder bool

	PriorGames []fpros.WeekRecord
	AfterGames []fpros.WeekRecord
}

// Build maps a window result onto the fixed record shape.
func Build(s Subject, scoring string, res window.Result) Record {
	r := Record{
		Subject:    s.Name,
		InjuryWeek: s.InjuryLabel,
		Scoring:    scoring,
		PriorGames: res.Prior,
		AfterGames: res.After,
	}
	for i, g := range res.Prior {
		if i >= Slots {
			break
		}
		r.Before[i] = g.Points
	}
	for i, g := range res.After {
		if i >= Slots {
			break
		}
		r.After = append(r.After, g.Points)
	}
	if res.Return != nil {
		r.ReturnWeek = res.Return.Key().String()
		missed := res.WeeksMissed
		r.WeeksMissed = &missed
	}
	return r
}

// Placeholder is the record emitted when a subject could not be analysed.
func Placeholder(s Subject) Record {
	return Record{
		Subject:     s.Name,
		InjuryWeek:  s.InjuryLabel,
		Scoring:     fpros.ScoringNone,
		Placeholder: true,
	}
}

// Header is the output column order.
func Header() []string {
	h := []string{"PLAYER NAME", "Injury Week"}
	for i := 1; i <= Slots; i++ {
		h = append(h, "Before_"+strconv.Itoa(i))
	}
	for i := 1; i <= Slots; i++ {
		h = append(h, "After_"+strconv.Itoa(i))
	}
	return append(h, "Return Week", "Weeks Missed Until Return")
}

// Cells renders the record in Header order: numbers stay numeric, absent
// after slots are NotApplicable and an absent return leaves both trailing cells empty.
func (r Record) Cells() []any {
	out := make([]any, 0, 2*Slots+4)
	out = append(out, r.Subject, r.InjuryWeek)
	for _, v := range r.Before {
		out = append(out, v)
	}
	for i := 0; i < Slots; i++ {
		if i < len(r.After) {
			out = append(out, r.After[i])
		} else {
			out = append(out, NotApplicable)
		}
	}
	out = append(out, r.ReturnWeek)
	if r.WeeksMissed != nil {
		out = append(out, *r.WeeksMissed)
	} else {
		out = append(out, "")
	}
	return out
}
