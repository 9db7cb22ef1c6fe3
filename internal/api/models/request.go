package models

// AssetConfig carries optional asset overrides. Zero fields keep the server's
// configured value.
type AssetConfig struct {
	Name                string   `json:"name,omitempty"`
	ESSPowerMW          float64  `json:"ess_power_mw,omitempty"`
	ESSEnergyMWh        float64  `json:"ess_energy_mwh,omitempty"`
	DRPowerMW           float64  `json:"dr_power_mw,omitempty"`
	DREnergyMWh         float64  `json:"dr_energy_mwh,omitempty"`
	EnergyCost          float64  `json:"energy_cost,omitempty"`
	EnergyPriceOverride *float64 `json:"energy_price_override,omitempty"`
	Epsilon             float64  `json:"epsilon,omitempty"`
	BidHours            float64  `json:"bid_hours,omitempty"`
	ExecHours           float64  `json:"exec_hours,omitempty"`
}

// StartRequest selects the window anchor. An empty StartDate means the first
// day of the series; a nil StartHour means hour 0.
type StartRequest struct {
	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD
	StartHour *int   `json:"start_hour,omitempty" binding:"omitempty,min=0,max=23"`
}

// ForecastRequest represents the request body for a forward forecast
type ForecastRequest struct {
	StartRequest
	Asset AssetConfig `json:"asset,omitempty"`
}

// SearchRequest represents the request body for a candidate search
type SearchRequest struct {
	StartRequest
	Asset AssetConfig `json:"asset,omitempty"`

	HoursPerCandidate int   `json:"hours_per_candidate,omitempty" binding:"omitempty,min=1,max=72"`
	Candidates        int   `json:"candidates,omitempty" binding:"omitempty,min=1,max=100000"`
	TopK              int   `json:"top_k,omitempty" binding:"omitempty,min=1,max=1000"`
	Seed              int64 `json:"seed,omitempty"`
}
