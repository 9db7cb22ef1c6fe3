package search

import "reserve-sim/internal/model"

// Result is the outcome of one search run.
// Candidates holds the top-K accepted candidates, best first.
type Result struct {
	Candidates []model.Candidate

	Trials   int // trials generated
	Accepted int // trials that passed the energy budget
	Rejected int

	HoursPerCandidate int
	HorizonLength     int
	EnergyBudgetMWh   float64
	// Seed reproduces the run with NewSeeded. It is never 0 for NewSeeded
	// engines; 0 means the engine drew from a source passed to New.
	Seed    int64
	Sampler string

	// Start is the horizon anchor; the engine leaves it for callers to set.
	Start model.StartTime
}

// ParamCount is the number of per-hour rows across all candidates, i.e. the
// number of data rows in the CSV export.
func (r Result) ParamCount() int {
	n := 0
	for _, c := range r.Candidates {
		n += len(c.Params)
	}
	return n
}
