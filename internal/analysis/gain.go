package analysis

import "reserve-sim/internal/model"

// awardProbability is ρ. Clearing is not modelled stochastically, so every
// bid is assumed to be awarded.
const awardProbability = 1.0

// ComputeGain evaluates one market hour at the full asset capacity Cmax.
func ComputeGain(rec model.MarketRecord, p model.AssetParams) model.GainResult {
	return ComputeGainWithCapacity(rec, p, p.MaxCapacityMW())
}

// ComputeGainWithCapacity evaluates one market hour with a committed capacity
// of cb MW:
//
//	standby = ρ · Cb · P0 · ΔT_b
//	exec    = ρ · (ε · Cb · ΔT_e) · (Pe − energyCost)
//
// P0 is the record's supplemental price. Without an energy price override
// Pe equals the energy cost and exec is zero.
func ComputeGainWithCapacity(rec model.MarketRecord, p model.AssetParams, cb float64) model.GainResult {
	p0 := rec.SupPrice

	standby := awardProbability * cb * p0 * p.BidHours

	executedMWh := p.Epsilon * cb * p.ExecHours
	exec := awardProbability * executedMWh * (p.ExecutionPrice() - p.EnergyCost)

	return model.GainResult{
		Hour:    rec.Hour.Int(),
		Date:    rec.Date,
		P0:      p0,
		Standby: standby,
		Exec:    exec,
		Total:   standby + exec,
		Cb:      cb,
	}
}
