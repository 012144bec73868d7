package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	missingColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	okColor      = color.New(color.FgGreen)
)

// WriteRecord prints the per-subject breakdown: every game in each window and
// the segment averages.
func WriteRecord(w io.Writer, r Record) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 60)); err != nil {
		return err
	}
	headingColor.Fprintf(w, "Analyzing %s (Injured %s)\n", r.Subject, r.InjuryWeek)
	fmt.Fprintf(w, "Scoring Used: %s\n", r.Scoring)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Window", "Week", "Points", "Status"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, g := range r.PriorGames {
		data = append(data, []string{"Before", g.Key().String(), formatPoints(g.Points), g.Status.String()})
	}
	for i, g := range r.AfterGames {
		data = append(data, []string{"After " + strconv.Itoa(i+1), g.Key().String(), formatPoints(g.Points), g.Status.String()})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if r.ReturnWeek != "" {
		fmt.Fprintf(w, "Return: %s, weeks missed until return: %d\n", r.ReturnWeek, *r.WeeksMissed)
	} else {
		missingColor.Fprintln(w, "Not enough data for first game after injury.")
	}
	for _, s := range r.Segments() {
		if !s.OK {
			missingColor.Fprintf(w, "Not enough data for %s.\n", strings.ToLower(s.Label))
			continue
		}
		fmt.Fprintf(w, "%s average: %s / %d = %s\n", s.Label, formatPoints(s.Avg.Total), s.Avg.Count, formatPoints(s.Avg.Mean))
	}
	return nil
}

// WriteFailures prints the run-end list of subjects that got placeholders.
func WriteFailures(w io.Writer, failures []Failure) {
	if len(failures) == 0 {
		okColor.Fprintln(w, "\nNo player errors encountered.")
		return
	}
	errorColor.Fprintln(w, "\n--- Players with errors ---")
	for _, f := range failures {
		fmt.Fprintf(w, "- %s: %s\n", f.Subject, f.Reason)
	}
}

func formatPoints(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
