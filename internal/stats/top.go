package stats

import (
	"github.com/verte-zerg/threshpick/internal/model"
)

// TopCandidates returns up to n candidates, keeping the order the selector
// ranked them in. n <= 0 returns all of them.
func TopCandidates(cands []model.Candidate, n int) []model.Candidate {
	if len(cands) == 0 {
		return nil
	}
	if n <= 0 || n > len(cands) {
		n = len(cands)
	}
	out := make([]model.Candidate, n)
	copy(out, cands[:n])
	return out
}
