package model

// AssetParams defines the storage + demand-response asset and the market
// assumptions used by the gain model.
// Units:
// - ESSPowerMW, DRPowerMW: MW
// - ESSEnergyMWh, DREnergyMWh: MWh
// - EnergyCost, EnergyPriceOverride: NTD/MWh
// - Epsilon: dispatch ratio, fraction 0..1
// - BidHours (ΔT_b), ExecHours (ΔT_e): hours
//
// AssetParams is a value type; derive variants with With rather than
// mutating a shared copy.
type AssetParams struct {
	ESSPowerMW   float64
	ESSEnergyMWh float64
	DRPowerMW    float64
	DREnergyMWh  float64

	EnergyCost float64
	// EnergyPriceOverride is the energy price Pe during execution. Nil means
	// Pe equals EnergyCost.
	EnergyPriceOverride *float64

	Epsilon   float64
	BidHours  float64
	ExecHours float64
}

// MaxCapacityMW is Cmax, the combined ESS and DR power.
func (p AssetParams) MaxCapacityMW() float64 {
	return p.ESSPowerMW + p.DRPowerMW
}

// EnergyBudgetMWh is the combined ESS and DR energy available for execution.
func (p AssetParams) EnergyBudgetMWh() float64 {
	return p.DREnergyMWh + p.ESSEnergyMWh
}

// ExecutionPrice returns Pe.
func (p AssetParams) ExecutionPrice() float64 {
	if p.EnergyPriceOverride != nil {
		return *p.EnergyPriceOverride
	}
	return p.EnergyCost
}

// Override adjusts a copy of AssetParams.
type Override func(*AssetParams)

func WithBidHours(h float64) Override {
	return func(p *AssetParams) { p.BidHours = h }
}

func WithExecHours(h float64) Override {
	return func(p *AssetParams) { p.ExecHours = h }
}

func WithEpsilon(e float64) Override {
	return func(p *AssetParams) { p.Epsilon = e }
}

func WithEnergyPrice(pe float64) Override {
	return func(p *AssetParams) { p.EnergyPriceOverride = &pe }
}

func WithoutEnergyPrice() Override {
	return func(p *AssetParams) { p.EnergyPriceOverride = nil }
}

// With returns a new AssetParams with the overrides applied in order; later
// overrides win. The receiver is left untouched.
func (p AssetParams) With(overrides ...Override) AssetParams {
	out := p
	if p.EnergyPriceOverride != nil {
		pe := *p.EnergyPriceOverride
		out.EnergyPriceOverride = &pe
	}
	for _, o := range overrides {
		if o != nil {
			o(&out)
		}
	}
	return out
}

// DefaultAssetParams mirrors the simulator's stock site: a 2.5 MW / 5 MWh ESS
// paired with 20 MW / 40 MWh of demand response.
func DefaultAssetParams() AssetParams {
	return AssetParams{
		ESSPowerMW:   2.5,
		ESSEnergyMWh: 5,
		DRPowerMW:    20,
		DREnergyMWh:  40,
		EnergyCost:   9000,
		Epsilon:      0.25,
		BidHours:     2,
		ExecHours:    2,
	}
}
