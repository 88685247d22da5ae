package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/threshpick/internal/selector"
)

func sampleSelection() selector.Selection {
	data := map[string]any{
		"0.3": map[string]any{"tp": 90, "fn": 10, "fp": 20},
		"0.4": map[string]any{"tp": 95, "fn": 5, "fp": 5},
		"0.5": map[string]any{"tp": 80, "fn": 20, "fp": 0},
		"0.6": map[string]any{"tp": 0, "fn": 0, "fp": 5},
		"0.7": map[string]any{"tp": 90, "fn": 10},
	}
	return selector.Select(data, selector.DefaultPolicy())
}

func TestBuildReport(t *testing.T) {
	report := BuildReport(sampleSelection())
	if !report.Found {
		t.Fatalf("expected a best threshold")
	}
	if report.Best.Threshold != 0.4 {
		t.Fatalf("expected 0.4, got %v", report.Best.Threshold)
	}
	if len(report.Entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(report.Entries))
	}
	if len(report.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(report.Candidates))
	}
	if report.Skipped != 2 {
		t.Fatalf("expected 2 skipped entries, got %d", report.Skipped)
	}

	curves := report.Curves()
	if len(curves) != 2 {
		t.Fatalf("expected precision and recall curves, got %d", len(curves))
	}
	if got := curves[1].Thresholds; len(got) != 3 || got[0] != 0.3 || got[2] != 0.5 {
		t.Fatalf("unexpected curve thresholds: %v", got)
	}
}

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResult(&buf, BuildReport(sampleSelection())); err != nil {
		t.Fatalf("WriteResult failed: %v", err)
	}
	if got := buf.String(); got != "The best threshold is: 0.4\n" {
		t.Fatalf("unexpected output: %q", got)
	}

	buf.Reset()
	empty := BuildReport(selector.Select(nil, selector.DefaultPolicy()))
	if err := WriteResult(&buf, empty); err != nil {
		t.Fatalf("WriteResult failed: %v", err)
	}
	if got := buf.String(); got != "No threshold was found with recall >= 0.9\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, BuildReport(sampleSelection())); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header and 5 rows, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "Threshold") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[2], "95.00%") || !strings.Contains(lines[2], "candidate") {
		t.Fatalf("unexpected row for 0.4: %q", lines[2])
	}
	if !strings.Contains(lines[3], "low-recall") {
		t.Fatalf("unexpected row for 0.5: %q", lines[3])
	}
	if !strings.Contains(lines[4], "tp+fn is zero") {
		t.Fatalf("unexpected row for 0.6: %q", lines[4])
	}
	if !strings.Contains(lines[5], "(fp)") {
		t.Fatalf("unexpected row for 0.7: %q", lines[5])
	}
}

func TestWriteCandidates(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCandidates(&buf, BuildReport(sampleSelection()), 1); err != nil {
		t.Fatalf("WriteCandidates failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and 1 row, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "0.4") {
		t.Fatalf("expected best candidate first, got %q", lines[1])
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, BuildReport(sampleSelection())); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Entries: 5", "Candidates: 2", "Skipped: 2", "Best precision: 95.00%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in summary:\n%s", want, out)
		}
	}
}
