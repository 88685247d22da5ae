package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/threshpick/internal/model"
	"github.com/verte-zerg/threshpick/internal/selector"
)

var tableHeaders = []string{"Threshold", "TP", "FN", "FP", "Recall", "Precision", "Status"}

// Report contains precomputed data for rendering one selection.
type Report struct {
	Policy     selector.Policy
	Entries    []model.Entry
	Candidates []model.Candidate
	Best       model.Candidate
	Found      bool
	Skipped    int
}

// BuildReport prepares a selection for rendering.
func BuildReport(sel selector.Selection) Report {
	best, found := sel.Best()
	return Report{
		Policy:     sel.Policy,
		Entries:    sel.Entries,
		Candidates: sel.Candidates,
		Best:       best,
		Found:      found,
		Skipped:    len(sel.Skipped()),
	}
}

// Curves returns precision and recall series over evaluated entries.
func (r Report) Curves() []Series {
	precision := Series{Name: "precision"}
	recall := Series{Name: "recall"}
	for _, e := range r.Entries {
		if e.Outcome == model.OutcomeSkipped {
			continue
		}
		precision.Thresholds = append(precision.Thresholds, e.Threshold)
		precision.Values = append(precision.Values, e.Precision)
		recall.Thresholds = append(recall.Thresholds, e.Threshold)
		recall.Values = append(recall.Values, e.Recall)
	}
	return []Series{precision, recall}
}

// WriteResult prints the selected threshold or the absence message.
func WriteResult(w io.Writer, r Report) error {
	if !r.Found {
		_, err := fmt.Fprintf(w, "No threshold was found with recall >= %s\n", formatThreshold(r.Policy.MinRecall))
		return err
	}
	style := lipgloss.NewRenderer(w).NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	_, err := fmt.Fprintf(w, "The best threshold is: %s\n", style.Render(formatThreshold(r.Best.Threshold)))
	return err
}

// WriteSummary prints entry counts for the selection.
func WriteSummary(w io.Writer, r Report) error {
	if _, err := fmt.Fprintf(w, "Entries: %d\n", len(r.Entries)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Candidates: %d\n", len(r.Candidates)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Skipped: %d\n", r.Skipped); err != nil {
		return err
	}
	if r.Found {
		if _, err := fmt.Fprintf(w, "Best precision: %s\n", formatRate(r.Best.Precision)); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable prints every entry with its counts and outcome.
func WriteTable(w io.Writer, r Report) error {
	rows := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		rows = append(rows, entryRow(e))
	}
	return writeLines(w, formatTable(tableHeaders, rows, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}))
}

// WriteCandidates prints the top n candidates, best first.
func WriteCandidates(w io.Writer, r Report, n int) error {
	top := TopCandidates(r.Candidates, n)
	if len(top) == 0 {
		_, err := fmt.Fprintln(w, "No candidates.")
		return err
	}
	rows := make([][]string, 0, len(top))
	for i, c := range top {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.Key,
			formatRate(c.Recall),
			formatRate(c.Precision),
		})
	}
	headers := []string{"Rank", "Threshold", "Recall", "Precision"}
	return writeLines(w, formatTable(headers, rows, map[int]bool{0: true, 2: true, 3: true}))
}

func entryRow(e model.Entry) []string {
	if e.Reason == model.SkipInvalidKey || e.Reason == model.SkipNotRecord || e.Reason == model.SkipInvalidMetric {
		status := "skipped: " + e.Reason.String()
		if e.Field != "" {
			status += " (" + e.Field + ")"
		}
		return []string{e.Key, "-", "-", "-", "-", "-", status}
	}
	row := []string{
		e.Key,
		formatCount(e.Metrics.TP),
		formatCount(e.Metrics.FN),
		formatCount(e.Metrics.FP),
	}
	if e.Reason == model.SkipUndefinedRecall {
		return append(row, "-", "-", "skipped: "+e.Reason.String())
	}
	return append(row, formatRate(e.Recall), formatRate(e.Precision), e.Outcome.String())
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatThreshold(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRate(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
