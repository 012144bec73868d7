package fpros

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoTable means the page has no weekly game log; the season simply has no data.
var ErrNoTable = errors.New("game log table not found")

const (
	gameTableSelector = "div.mobile-table table, table.mobile-table, table.table"
	weekKeyword       = "Week"
	probeRows         = 6
)

// LocateTable parses a page body and returns the game-log table.
func LocateTable(html string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	t := FindGameTable(doc)
	if t == nil {
		return nil, ErrNoTable
	}
	return t, nil
}

// FindGameTable prefers the known game-log markup and otherwise takes the first
// table whose leading rows mention a week label. Returns nil when nothing matches.
func FindGameTable(doc *goquery.Document) *goquery.Selection {
	if t := doc.Find(gameTableSelector).First(); t.Length() > 0 && mentionsWeek(t) {
		return t
	}
	var chosen *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, cand *goquery.Selection) bool {
		if mentionsWeek(cand) {
			chosen = cand
			return false
		}
		return true
	})
	return chosen
}

func mentionsWeek(table *goquery.Selection) bool {
	found := false
	table.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		if i >= probeRows {
			return false
		}
		if strings.Contains(tr.Text(), weekKeyword) {
			found = true
			return false
		}
		return true
	})
	return found
}
