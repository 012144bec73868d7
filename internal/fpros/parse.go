package fpros

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const weekPrefix = "week"

// fallbackCells bounds the rightward scan used when the points column is blank.
const fallbackCells = 4

// ClassifyRows turns a located game-log table into week records for one season,
// in the order the rows appear. Header, footer and summary rows emit nothing.
func ClassifyRows(table *goquery.Selection, season int) []WeekRecord {
	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr")
	}

	out := make([]WeekRecord, 0, rows.Length())
	rows.Each(func(_ int, tr *goquery.Selection) {
		if r, ok := classifyRow(tr, season); ok {
			out = append(out, r)
		}
	})
	return out
}

func classifyRow(tr *goquery.Selection, season int) (WeekRecord, bool) {
	text := strings.TrimSpace(tr.Text())
	if text == "" {
		return WeekRecord{}, false
	}
	cells := cellTexts(tr)

	if strings.Contains(strings.ToLower(strings.Join(cells, " ")), "bye") {
		if len(cells) == 0 {
			return WeekRecord{}, false
		}
		week, ok := parseWeekLabel(cells[0])
		if !ok {
			return WeekRecord{}, false
		}
		return WeekRecord{Season: season, Week: week, Status: Bye}, true
	}

	if len(cells) == 0 {
		return WeekRecord{}, false
	}
	week, ok := parseWeekLabel(cells[0])
	if !ok {
		return WeekRecord{}, false
	}

	rec := WeekRecord{Season: season, Week: week, Status: Skipped}
	if pts, ok := pointsFromCells(cells); ok {
		rec.Status = Played
		rec.Points = pts
	}
	return rec, true
}

// pointsFromCells reads the second-from-last cell, then falls back to the
// last few cells scanned right to left.
func pointsFromCells(cells []string) (float64, bool) {
	if len(cells) >= 2 {
		if f, ok := parsePoints(cells[len(cells)-2]); ok {
			return f, true
		}
	}
	start := len(cells) - fallbackCells
	if start < 0 {
		start = 0
	}
	for i := len(cells) - 1; i >= start; i-- {
		if f, ok := parsePoints(cells[i]); ok {
			return f, true
		}
	}
	return 0, false
}

// parseWeekLabel accepts "Week N" (any case) and returns N.
func parseWeekLabel(s string) (int, bool) {
	if !strings.HasPrefix(strings.ToLower(s), weekPrefix) {
		return 0, false
	}
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func cellTexts(tr *goquery.Selection) []string {
	tds := tr.Find("td")
	out := make([]string, 0, tds.Length())
	tds.Each(func(_ int, td *goquery.Selection) {
		out = append(out, strings.TrimSpace(td.Text()))
	})
	return out
}
