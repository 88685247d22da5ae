// Package selector picks a classification threshold from per-threshold
// confusion-matrix counts.
//
// The policy keeps every threshold whose recall reaches a floor (0.9 by
// default), then takes the one with the highest precision. Exact precision
// ties go to the higher threshold. Malformed entries are excluded rather than
// reported as errors, so selection is total over any input shape.
package selector

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/verte-zerg/threshpick/internal/model"
)

// DefaultMinRecall is the recall floor used by FindBestThreshold.
const DefaultMinRecall = 0.9

// Policy configures candidate eligibility.
type Policy struct {
	// MinRecall is inclusive.
	MinRecall float64
}

// DefaultPolicy returns the policy with the default recall floor.
func DefaultPolicy() Policy {
	return Policy{MinRecall: DefaultMinRecall}
}

// Validate reports whether the policy is usable.
func (p Policy) Validate() error {
	if math.IsNaN(p.MinRecall) || p.MinRecall < 0 || p.MinRecall > 1 {
		return fmt.Errorf("min recall must be between 0 and 1, got %v", p.MinRecall)
	}
	return nil
}

// Selection is the full outcome of evaluating one input.
type Selection struct {
	Policy Policy
	// Entries holds every input entry, ordered by threshold ascending.
	// Entries with a non-numeric key come last, ordered by key.
	Entries []model.Entry
	// Candidates is ordered best first.
	Candidates []model.Candidate
}

// Best returns the winning candidate, if any.
func (s Selection) Best() (model.Candidate, bool) {
	if len(s.Candidates) == 0 {
		return model.Candidate{}, false
	}
	return s.Candidates[0], true
}

// Skipped returns the entries that could not be evaluated.
func (s Selection) Skipped() []model.Entry {
	var out []model.Entry
	for _, e := range s.Entries {
		if e.Outcome == model.OutcomeSkipped {
			out = append(out, e)
		}
	}
	return out
}

// FindBestThreshold returns the best threshold under the default policy.
// ok is false when data is not a map or no entry reaches the recall floor.
func FindBestThreshold(data any) (threshold float64, ok bool) {
	best, ok := Select(data, DefaultPolicy()).Best()
	if !ok {
		return 0, false
	}
	return best.Threshold, true
}

// Select evaluates every entry of data under policy. data is expected to be
// a map from threshold values to metric records; any other shape yields an
// empty Selection. data is never modified.
func Select(data any, policy Policy) Selection {
	sel := Selection{Policy: policy}

	v := reflect.ValueOf(data)
	if !v.IsValid() || v.Kind() != reflect.Map || v.Len() == 0 {
		return sel
	}

	sel.Entries = make([]model.Entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		entry := parseEntry(iter.Key().Interface(), iter.Value().Interface())
		if entry.Reason == model.SkipNone {
			evaluate(&entry, policy)
		}
		sel.Entries = append(sel.Entries, entry)
	}
	sortEntries(sel.Entries)

	for _, e := range sel.Entries {
		if e.Outcome != model.OutcomeCandidate {
			continue
		}
		sel.Candidates = append(sel.Candidates, model.Candidate{
			Key:       e.Key,
			Threshold: e.Threshold,
			Precision: e.Precision,
			Recall:    e.Recall,
		})
	}
	sort.SliceStable(sel.Candidates, func(i, j int) bool {
		return better(sel.Candidates[i], sel.Candidates[j])
	})
	return sel
}

func evaluate(e *model.Entry, policy Policy) {
	m := e.Metrics
	positives := m.TP + m.FN
	if positives == 0 {
		e.Reason = model.SkipUndefinedRecall
		return
	}
	e.Recall = m.TP / positives
	if predicted := m.TP + m.FP; predicted != 0 {
		e.Precision = m.TP / predicted
	}
	if e.Recall >= policy.MinRecall {
		e.Outcome = model.OutcomeCandidate
	} else {
		e.Outcome = model.OutcomeBelowRecall
	}
}

// better orders by precision, then threshold, both descending.
func better(a, b model.Candidate) bool {
	if a.Precision != b.Precision {
		return a.Precision > b.Precision
	}
	return a.Threshold > b.Threshold
}

func sortEntries(entries []model.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		ai := entries[i].Reason == model.SkipInvalidKey
		aj := entries[j].Reason == model.SkipInvalidKey
		if ai != aj {
			return aj
		}
		if !ai && entries[i].Threshold != entries[j].Threshold {
			return entries[i].Threshold < entries[j].Threshold
		}
		return entries[i].Key < entries[j].Key
	})
}
