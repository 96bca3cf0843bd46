// Package console plays a story over a plain line-oriented terminal.
package console

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/absurd-path/internal/engine"
	"github.com/tatianab/absurd-path/internal/models"
)

const (
	ruleWidth    = 74
	wrapWidth    = 78
	recentVisits = 6
)

var bodyStyle = lipgloss.NewStyle().Width(wrapWidth)

// Outcome reports why a Run ended.
type Outcome int

const (
	Quit Outcome = iota
	Ended
	DeadEnd
	InputClosed
)

// Run plays state forward on eng, reading selections from in and writing
// to out, until the player quits, an end node or a dead end is reached,
// or in is exhausted.
func Run(eng *engine.Engine, state *models.GameState, in io.Reader, out io.Writer) (Outcome, error) {
	scanner := bufio.NewScanner(in)
	for {
		view, err := eng.View(state)
		if err != nil {
			return Quit, err
		}
		printView(out, eng, view, state)

		if view.Node.End {
			fmt.Fprintln(out, "\n=== THE JOURNEY PAUSES HERE ===")
			fmt.Fprintln(out, "Journal:")
			fmt.Fprintln(out, formatJournal(view.Journal))
			return Ended, nil
		}
		if len(view.Choices) == 0 {
			fmt.Fprintln(out, "\nNo available choices. The world refuses to respond.")
			return DeadEnd, nil
		}

		for i, c := range view.Choices {
			fmt.Fprintf(out, "  %d) %s\n", i+1, c.Text)
		}
		fmt.Fprintln(out, "  q) Quit")

		for {
			fmt.Fprint(out, "\nChoose: ")
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return InputClosed, err
				}
				return InputClosed, nil
			}
			sel := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if sel == "q" {
				fmt.Fprintln(out, "Goodbye.")
				return Quit, nil
			}
			n, err := strconv.Atoi(sel)
			if err != nil || n < 1 || n > len(view.Choices) {
				fmt.Fprintln(out, "Invalid selection.")
				continue
			}
			if _, err := eng.Choose(state, view.Choices[n-1].Index); err != nil {
				return Quit, err
			}
			break
		}
	}
}

func printView(out io.Writer, eng *engine.Engine, view engine.NodeView, state *models.GameState) {
	title := "ABSURD PATH"
	if t := eng.Content().Title(); t != "" {
		title += ": " + t
	}
	fmt.Fprintln(out, "\n"+strings.Repeat("=", ruleWidth))
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(out, engine.StatsLine(state))
	fmt.Fprintln(out, "Flags:", formatFlags(view.Flags))
	fmt.Fprintln(out, "Visited:", strings.Join(lastN(view.Visited, recentVisits), ", "))
	fmt.Fprintln(out, strings.Repeat("-", ruleWidth))

	heading := view.Node.Title
	if heading == "" {
		heading = view.Node.ID
	}
	fmt.Fprintf(out, "\n[%s] %s\n\n", view.Node.ID, heading)
	if view.Node.Body != "" {
		fmt.Fprintln(out, bodyStyle.Render(view.Node.Body))
	}
	fmt.Fprintln(out)
}

func formatFlags(flags map[string]bool) string {
	if len(flags) == 0 {
		return "(none)"
	}
	names := make([]string, 0, len(flags))
	for k := range flags {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func formatJournal(lines []string) string {
	if len(lines) == 0 {
		return "  (empty)"
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("  %02d. %s", i+1, l)
	}
	return strings.Join(out, "\n")
}

func lastN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
