package strategy

import (
	"math/rand"

	"reserve-sim/internal/model"
)

// Context is what a sampler sees for one selected hour of a candidate.
type Context struct {
	Index  int // position in the horizon window
	Record model.MarketRecord
	Asset  model.AssetParams
	Rand   *rand.Rand
}

// Dispatch is the set of per-hour bid parameters chosen for a candidate hour.
type Dispatch struct {
	CapacityMW float64
	BidHours   int
	ExecHours  int
	Epsilon    float64
}

// ExecutedEnergyMWh is ε·Cb·ΔT_e.
func (d Dispatch) ExecutedEnergyMWh() float64 {
	return d.Epsilon * d.CapacityMW * float64(d.ExecHours)
}

// Overrides returns the asset overrides that make the gain model evaluate
// this dispatch.
func (d Dispatch) Overrides() []model.Override {
	return []model.Override{
		model.WithBidHours(float64(d.BidHours)),
		model.WithExecHours(float64(d.ExecHours)),
		model.WithEpsilon(d.Epsilon),
	}
}

// Sampler draws dispatch parameters for a candidate hour. Implementations
// must take all randomness from ctx.Rand.
type Sampler interface {
	Name() string
	Sample(ctx Context) Dispatch
}
