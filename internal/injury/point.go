// Package injury parses free-form injury-week labels into the (week, year)
// pivot used by the window engine.
package injury

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/tyler180/injury-windows/internal/fpros"
)

var (
	ErrUnparseable   = errors.New("unparseable injury week")
	ErrUnknownSeason = errors.New("no season start date for year")
)

var weekRe = regexp.MustCompile(`(?i)week\s*(\d+)\s*,\s*(\d{4})`)

// Point is the injury pivot. Week 0 means the date fell before that season's kickoff.
type Point struct {
	Week int
	Year int
}

func (p Point) Key() fpros.Key { return fpros.Key{Season: p.Year, Week: p.Week} }

func (p Point) String() string { return fmt.Sprintf("Week %d, %d", p.Week, p.Year) }

// ParseLabel accepts "Week N, YYYY" anywhere in the label, or any calendar date
// dateparse understands.
func ParseLabel(label string) (Point, error) {
	s := strings.TrimSpace(label)
	if s == "" {
		return Point{}, fmt.Errorf("%w: empty label", ErrUnparseable)
	}
	if m := weekRe.FindStringSubmatch(s); m != nil {
		week, err := strconv.Atoi(m[1])
		if err != nil {
			return Point{}, fmt.Errorf("%w: %q: %w", ErrUnparseable, label, err)
		}
		year, err := strconv.Atoi(m[2])
		if err != nil {
			return Point{}, fmt.Errorf("%w: %q: %w", ErrUnparseable, label, err)
		}
		return Point{Week: week, Year: year}, nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q", ErrUnparseable, label)
	}
	p, err := WeekOf(t)
	if err != nil {
		return Point{}, fmt.Errorf("injury date %q: %w", label, err)
	}
	return p, nil
}
