package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/handiism/paper-renamer/internal/confirm"
)

// RunPlain drives s from line-oriented input. While a proposal is shown it
// accepts y/yes, n/no and e/edit; while editing, each line is a candidate
// name and a blank line cancels. End of input cancels.
func RunPlain(ctx context.Context, s confirm.Session, in io.Reader, out io.Writer) (confirm.Session, error) {
	lines := readLines(ctx, in)

	for !s.Terminal() {
		if s.Problem != nil {
			fmt.Fprintf(out, "! %v\n", s.Problem)
		}

		switch s.State {
		case confirm.Proposed:
			fmt.Fprintf(out, "Rename %s -> %s ? [y]es / [n]o / [e]dit: ", s.Proposal.SourceName(), s.Proposal.Formatted)
		case confirm.Editing:
			fmt.Fprint(out, "New name (author-yyyy-title.pdf, blank to cancel): ")
		}

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return s, ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(out)
			s = s.Step(confirm.Cancel())
			continue
		}

		if s.State == confirm.Editing {
			if strings.TrimSpace(line) == "" {
				s = s.Step(confirm.Cancel())
				continue
			}
			s = s.Step(confirm.Edit(line))
			continue
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			s = s.Step(confirm.Accept())
		case "n", "no":
			s = s.Step(confirm.Cancel())
		case "e", "edit":
			s = s.Step(confirm.Edit(""))
		default:
			fmt.Fprintf(out, "! please answer y, n or e\n")
		}
	}

	if s.State == confirm.Cancelled {
		fmt.Fprintln(out, "Cancelled, file left unchanged.")
	}
	return s, nil
}

// readLines delivers lines from r until EOF. The goroutine may outlive a
// cancelled caller while blocked on a read.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
