package recovery

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LinePrompter asks on out and reads answers line by line from in.
// An empty answer or end of input declines.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) Override(ctx context.Context, subject, tried string) (string, bool, error) {
	fmt.Fprintf(p.out, "\nNo data found for %s using %s\n", subject, tried)
	for {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		fmt.Fprintf(p.out, "Enter the full game log URL for %s (or press Enter to skip): ", subject)
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", false, err
		}
		answer := strings.TrimSpace(line)
		switch {
		case answer == "":
			return "", false, nil
		case strings.HasPrefix(strings.ToLower(answer), "http"):
			return answer, true, nil
		}
		fmt.Fprintln(p.out, "Please paste a full URL starting with 'http' or press Enter to skip.")
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
	}
}
