// Package model defines shared data structures.
package model

// SelectConfig defines settings for a selection run.
type SelectConfig struct {
	MinRecall float64
	Format    string
	Table     bool
	Plot      bool
	Jobs      int
}

// MetricSet holds the confusion-matrix counts recorded at one threshold.
// TN is carried for reporting only.
type MetricSet struct {
	TP float64 `json:"tp" yaml:"tp"`
	FN float64 `json:"fn" yaml:"fn"`
	FP float64 `json:"fp" yaml:"fp"`
	TN float64 `json:"tn,omitempty" yaml:"tn,omitempty"`
}

// Outcome classifies how an input entry was treated.
type Outcome int

const (
	// OutcomeSkipped marks entries that could not be evaluated.
	OutcomeSkipped Outcome = iota
	// OutcomeBelowRecall marks evaluated entries that missed the recall floor.
	OutcomeBelowRecall
	// OutcomeCandidate marks entries eligible for selection.
	OutcomeCandidate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCandidate:
		return "candidate"
	case OutcomeBelowRecall:
		return "low-recall"
	default:
		return "skipped"
	}
}

// SkipReason explains why an entry was excluded before evaluation.
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipInvalidKey
	SkipNotRecord
	SkipInvalidMetric
	SkipUndefinedRecall
)

func (r SkipReason) String() string {
	switch r {
	case SkipInvalidKey:
		return "threshold is not numeric"
	case SkipNotRecord:
		return "metrics are not a record"
	case SkipInvalidMetric:
		return "metric missing or not numeric"
	case SkipUndefinedRecall:
		return "tp+fn is zero"
	default:
		return ""
	}
}

// Entry is one input threshold after parsing and evaluation.
type Entry struct {
	Key       string
	Threshold float64
	Metrics   MetricSet
	Recall    float64
	Precision float64
	Outcome   Outcome
	Reason    SkipReason
	// Field names the offending metric when Reason is SkipInvalidMetric.
	Field string
}

// Candidate is a threshold that met the recall floor.
type Candidate struct {
	Key       string
	Threshold float64
	Precision float64
	Recall    float64
}
