package stats

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlotWidthFor(t *testing.T) {
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	if got := PlotWidthFor(80); got != 80-axisWidth {
		t.Fatalf("expected width %d, got %d", 80-axisWidth, got)
	}
	if got := PlotWidthFor(axisWidth + 3); got != minPlotWidth {
		t.Fatalf("expected narrow terminal to clamp to %d, got %d", minPlotWidth, got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestPlotCurvesClampsNarrowWidth(t *testing.T) {
	var buf bytes.Buffer
	err := PlotCurves(&buf, "", []Series{
		{Name: "precision", Thresholds: []float64{0.2, 0.8}, Values: []float64{0.4, 0.9}},
	}, 3, 2)
	if err != nil {
		t.Fatalf("PlotCurves failed: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected plot rows, got:\n%s", buf.String())
	}
	prefix := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	for _, row := range lines[:2] {
		if got := utf8.RuneCountInString(row) - prefix; got != minPlotWidth {
			t.Fatalf("expected %d plot cells, got %d in %q", minPlotWidth, got, row)
		}
	}
}
