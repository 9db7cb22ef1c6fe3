package analysis

import (
	"sort"

	"reserve-sim/internal/model"
)

// RankByTotalGain sorts candidates by TotalGain descending and keeps the
// first topK (all of them when topK <= 0). Equal gains keep generation
// order, so the ranking does not depend on how trials were scheduled.
func RankByTotalGain(candidates []model.Candidate, topK int) []model.Candidate {
	out := make([]model.Candidate, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalGain != out[j].TotalGain {
			return out[i].TotalGain > out[j].TotalGain
		}
		return out[i].Trial < out[j].Trial
	})
	if topK > 0 && topK < len(out) {
		out = out[:topK]
	}
	return out
}
