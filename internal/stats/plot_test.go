package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotCurves(t *testing.T) {
	var buf bytes.Buffer
	thresholds := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	err := PlotCurves(&buf, "Test Plot", []Series{
		{Name: "precision", Thresholds: thresholds, Values: []float64{0.5, 0.6, 0.8, 0.9, 1}},
		{Name: "recall", Thresholds: thresholds, Values: []float64{1, 0.95, 0.9, 0.7, 0.2}},
	}, 20, 4)
	if err != nil {
		t.Fatalf("PlotCurves failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Test Plot") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "Legend:") {
		t.Fatalf("expected legend in output")
	}
	if !strings.Contains(out, "0.1") || !strings.Contains(out, "0.9") {
		t.Fatalf("expected threshold range on x axis, got:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes for non-terminal writer")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	expectedMin := 1 + 4 + 1 + 1
	if len(lines) < expectedMin {
		t.Fatalf("expected at least %d lines of output, got %d", expectedMin, len(lines))
	}
}

func TestPlotCurvesSkipsMismatchedSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotCurves(&buf, "Empty", []Series{
		{Name: "broken", Thresholds: []float64{0.1}, Values: []float64{0.5, 0.6}},
	}, 20, 4)
	if err != nil {
		t.Fatalf("PlotCurves failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestResampleByThreshold(t *testing.T) {
	got := resampleByThreshold([]float64{0, 1}, []float64{0, 1}, 0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if diff := got[i] - want[i]; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("value %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	flat := resampleByThreshold([]float64{0.4}, []float64{0.7}, 0.4, 0.4, 3)
	for i, v := range flat {
		if v != 0.7 {
			t.Fatalf("value %d: expected 0.7, got %v", i, v)
		}
	}
}

func TestValueToRowClamps(t *testing.T) {
	if got := valueToRow(1, 8); got != 0 {
		t.Fatalf("expected top row for 1, got %d", got)
	}
	if got := valueToRow(0, 8); got != 7 {
		t.Fatalf("expected bottom row for 0, got %d", got)
	}
	if got := valueToRow(2, 8); got != 0 {
		t.Fatalf("expected clamp to top row, got %d", got)
	}
}
