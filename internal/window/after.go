package window

import "github.com/tyler180/injury-windows/internal/fpros"

// After returns the first max played games strictly after pivot, ascending.
func After(timeline []fpros.WeekRecord, pivot fpros.Key, max int) []fpros.WeekRecord {
	var out []fpros.WeekRecord
	for _, r := range sorted(timeline) {
		if len(out) >= max {
			break
		}
		if r.Status == fpros.Played && pivot.Less(r.Key()) {
			out = append(out, r)
		}
	}
	return out
}

// MissedWeeks counts skipped weeks strictly between pivot and ret. Byes and
// played weeks are not counted.
func MissedWeeks(timeline []fpros.WeekRecord, pivot, ret fpros.Key) int {
	n := 0
	for _, r := range timeline {
		k := r.Key()
		if pivot.Less(k) && k.Less(ret) && r.Status == fpros.Skipped {
			n++
		}
	}
	return n
}

// Result bundles everything derived for one injury point.
type Result struct {
	Prior []fpros.WeekRecord
	After []fpros.WeekRecord

	// Return is the first after-window game; nil when the subject never played again.
	Return      *fpros.WeekRecord
	WeeksMissed int
}

func Compute(timeline []fpros.WeekRecord, pivot fpros.Key, opts Options) Result {
	res := Result{
		Prior: Prior(timeline, pivot, opts),
		After: After(timeline, pivot, opts.MaxGames),
	}
	if len(res.After) > 0 {
		ret := res.After[0]
		res.Return = &ret
		res.WeeksMissed = MissedWeeks(timeline, pivot, ret.Key())
	}
	return res
}
