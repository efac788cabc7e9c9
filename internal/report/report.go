// Package report renders candidates and letter statistics as plain text.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/caesar-breaker/internal/freq"
	"github.com/verte-zerg/caesar-breaker/internal/lang"
	"github.com/verte-zerg/caesar-breaker/internal/model"
)

const (
	barChar             = '#'
	minBarWidth         = 10
	terminalWidthBackup = 80
)

// RenderCandidates writes one line per candidate, optionally prefixed by its shift.
func RenderCandidates(w io.Writer, cands []model.Candidate, showShift bool) error {
	for _, c := range cands {
		var err error
		if showShift {
			_, err = fmt.Fprintf(w, "%d\t%s\n", c.Shift, c.Plaintext)
		} else {
			_, err = fmt.Fprintln(w, c.Plaintext)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// RenderFrequencyTable prints letter counts, shares and bars scaled so each
// line fits within totalWidth columns.
func RenderFrequencyTable(w io.Writer, m freq.Map, totalWidth int) error {
	entries := m.Top(0)
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No letters found.")
		return err
	}
	total := m.Total()
	maxCount := entries[0].Count

	headers := []string{"Letter", "Count", "Share"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			string(e.Letter),
			fmt.Sprintf("%d", e.Count),
			fmt.Sprintf("%.2f%%", float64(e.Count)/float64(total)*100),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true}
	lines := formatTable(headers, rows, rightAlign)
	widths := columnWidths(headers, rows)
	barWidth := BarWidthFor(totalWidth, widths)

	if _, err := fmt.Fprintln(w, lines[0]); err != nil {
		return err
	}
	for i, e := range entries {
		n := e.Count * barWidth / maxCount
		if n == 0 {
			n = 1
		}
		line := padCell(lines[i+1], tableWidth(widths), false)
		if _, err := fmt.Fprintf(w, "%s %s\n", line, strings.Repeat(string(barChar), n)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nLetters: %d  Distinct: %d\n", total, m.Len())
	return err
}

// RenderProfiles lists the supported languages and their anchor letters.
func RenderProfiles(w io.Writer, profiles []lang.Profile) error {
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{p.Code, string(p.MostCommon)})
	}
	for _, line := range formatTable(nil, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// BarWidthFor returns the room left for bars after the table columns.
func BarWidthFor(totalWidth int, widths []int) int {
	if totalWidth <= 0 {
		return minBarWidth
	}
	barWidth := totalWidth - tableWidth(widths) - 1
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	return barWidth
}

// TerminalWidth reports the width of stdout, or a fallback when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func tableWidth(widths []int) int {
	if len(widths) == 0 {
		return 0
	}
	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}
	return total
}
