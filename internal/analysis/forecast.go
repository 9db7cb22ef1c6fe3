package analysis

import (
	"reserve-sim/internal/model"
)

// ForecastForward evaluates every record of the window at full capacity,
// one result per record in window order.
func ForecastForward(window []model.MarketRecord, p model.AssetParams) []model.GainResult {
	out := make([]model.GainResult, len(window))
	for i, rec := range window {
		out[i] = ComputeGain(rec, p)
	}
	return out
}

// ForecastSummary is the headline view of a forward forecast.
type ForecastSummary struct {
	Hours int

	TotalGain float64

	// Values for the first hour of the window (the selected start).
	StartGain     float64
	StartP0       float64
	StartCapacity float64

	// MaxGainHour is the hour of day of the first hour reaching MaxGain.
	MaxGainHour int
	MaxGain     float64

	MeanP0 float64
}

// Summarize reduces a forecast to its headline figures. An empty forecast
// yields the zero summary.
func Summarize(gains []model.GainResult) ForecastSummary {
	s := ForecastSummary{}
	if len(gains) == 0 {
		return s
	}
	s.Hours = len(gains)
	s.StartGain = gains[0].Total
	s.StartP0 = gains[0].P0
	s.StartCapacity = gains[0].Cb
	s.MaxGainHour = gains[0].Hour
	s.MaxGain = gains[0].Total

	sumP0 := 0.0
	for _, g := range gains {
		s.TotalGain += g.Total
		sumP0 += g.P0
		if g.Total > s.MaxGain {
			s.MaxGain = g.Total
			s.MaxGainHour = g.Hour
		}
	}
	s.MeanP0 = sumP0 / float64(len(gains))
	return s
}
