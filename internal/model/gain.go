package model

// GainResult is the gain breakdown for one market hour.
// Total is always Standby + Exec; nothing is rounded here.
type GainResult struct {
	Hour int
	Date Date

	P0      float64 // clearing price, NTD/MW·h
	Standby float64 // capacity standby revenue, NTD
	Exec    float64 // execution margin, NTD
	Total   float64

	Cb float64 // capacity used for this hour, MW
}

// Candidate is one randomly generated multi-hour dispatch plan.
type Candidate struct {
	ID    string
	Trial int // generation order, 0-based

	// Indices are positions in the horizon window, ascending and unique.
	Indices []int
	// Hours holds the hour of day of each selected index, in index order.
	Hours []int

	TotalGain float64
	AvgP0     float64
	EnergyMWh float64 // executed energy summed over all hours

	Params []CandidateParam
}

// CandidateParam records the sampled parameters for one hour of a candidate.
type CandidateParam struct {
	Hour    int
	Date    Date
	Cb      float64
	DTB     int
	DTE     int
	Epsilon float64
	Gain    float64
	P0      float64
}

// ExecutedEnergyMWh is ε·Cb·ΔT_e for this hour.
func (cp CandidateParam) ExecutedEnergyMWh() float64 {
	return cp.Epsilon * cp.Cb * float64(cp.DTE)
}
