package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/caesar-breaker/internal/freq"
	"github.com/verte-zerg/caesar-breaker/internal/lang"
	"github.com/verte-zerg/caesar-breaker/internal/model"
)

func TestRenderCandidates(t *testing.T) {
	cands := []model.Candidate{{Shift: 0, Plaintext: "b"}, {Shift: -10, Plaintext: "c d"}}

	var plain bytes.Buffer
	if err := RenderCandidates(&plain, cands, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	if plain.String() != "b\nc d\n" {
		t.Fatalf("unexpected output %q", plain.String())
	}

	var shifted bytes.Buffer
	if err := RenderCandidates(&shifted, cands, true); err != nil {
		t.Fatalf("render: %v", err)
	}
	if shifted.String() != "0\tb\n-10\tc d\n" {
		t.Fatalf("unexpected output %q", shifted.String())
	}
}

func TestRenderFrequencyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderFrequencyTable(&buf, freq.Count("hello world"), 40); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if lines[0] != "Letter Count  Share" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "l          3 30.00% "+strings.Repeat("#", 20) {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if lines[2] != "o          2 20.00% "+strings.Repeat("#", 13) {
		t.Fatalf("unexpected second row %q", lines[2])
	}
	if !strings.Contains(buf.String(), "Letters: 10  Distinct: 7") {
		t.Fatalf("missing summary in %q", buf.String())
	}
	for _, line := range lines {
		if len(line) > 40 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}

func TestRenderFrequencyTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderFrequencyTable(&buf, freq.Count("123"), 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No letters found.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestBarWidthFor(t *testing.T) {
	widths := []int{6, 5, 6}
	if got := BarWidthFor(80, widths); got != 80-19-1 {
		t.Fatalf("expected %d, got %d", 80-19-1, got)
	}
	if got := BarWidthFor(0, widths); got != minBarWidth {
		t.Fatalf("expected min width %d, got %d", minBarWidth, got)
	}
	if got := BarWidthFor(20, widths); got != minBarWidth {
		t.Fatalf("expected min width %d, got %d", minBarWidth, got)
	}
}

func TestRenderProfiles(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderProfiles(&buf, lang.Profiles()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "en e\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
