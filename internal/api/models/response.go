package models

import "time"

// SeriesResponse describes the market series held by the server
type SeriesResponse struct {
	Source    string    `json:"source"`
	Count     int       `json:"count"`
	FirstDate string    `json:"first_date,omitempty"`
	LastDate  string    `json:"last_date,omitempty"`
	LoadedAt  time.Time `json:"loaded_at"`
	Warning   string    `json:"warning,omitempty"`
}

// StartTime echoes the resolved window anchor
type StartTime struct {
	Date string `json:"date"`
	Hour int    `json:"hour"`
}

// ForecastResponse represents the response from a forward forecast
type ForecastResponse struct {
	Start   StartTime       `json:"start"`
	Summary ForecastSummary `json:"summary"`
	Hours   []ForecastHour  `json:"hours"`
	Warning string          `json:"warning,omitempty"`
}

// ForecastSummary contains the headline forecast figures
type ForecastSummary struct {
	TotalGain     float64 `json:"total_gain"`
	StartGain     float64 `json:"start_gain"`
	StartP0       float64 `json:"start_p0"`
	StartCapacity float64 `json:"start_capacity_mw"`
	MaxGainHour   int     `json:"max_gain_hour"`
	MaxGain       float64 `json:"max_gain"`
	MeanP0        float64 `json:"mean_p0"`
}

// ForecastHour is one hour of the forward forecast
type ForecastHour struct {
	Label   string  `json:"label"` // "MM/DD HH:mm"
	Date    string  `json:"date"`
	Hour    int     `json:"hour"`
	P0      float64 `json:"p0"`
	Standby float64 `json:"standby"`
	Exec    float64 `json:"exec"`
	Total   float64 `json:"total"`
	Cb      float64 `json:"cb"`
}

// SearchResponse represents the response from a candidate search
type SearchResponse struct {
	ID                string          `json:"id"`
	Start             StartTime       `json:"start"`
	Seed              int64           `json:"seed,omitempty"`
	HoursPerCandidate int             `json:"hours_per_candidate"`
	HorizonLength     int             `json:"horizon_length"`
	Trials            int             `json:"trials"`
	Accepted          int             `json:"accepted"`
	Rejected          int             `json:"rejected"`
	EnergyBudgetMWh   float64         `json:"energy_budget_mwh"`
	Candidates        []CandidateView `json:"candidates"`
	Warning           string          `json:"warning,omitempty"`
}

// CandidateView is one ranked dispatch plan
type CandidateView struct {
	Rank      int         `json:"rank"`
	ID        string      `json:"id"`
	Hours     []int       `json:"hours"`
	TotalGain float64     `json:"total_gain"`
	AvgP0     float64     `json:"avg_p0"`
	EnergyMWh float64     `json:"energy_mwh"`
	Params    []ParamView `json:"params"`
}

// ParamView is the sampled parameter set for one candidate hour
type ParamView struct {
	Date    string  `json:"date"`
	Hour    int     `json:"hour"`
	Cb      float64 `json:"cb"`
	DTB     int     `json:"dtb"`
	DTE     int     `json:"dte"`
	Epsilon float64 `json:"epsilon"`
	Gain    float64 `json:"gain"`
	P0      float64 `json:"p0"`
}

// ParameterInfo describes one configuration field and its suggested range
type ParameterInfo struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Unit        string   `json:"unit,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Step        float64  `json:"step,omitempty"`
	Default     any      `json:"default,omitempty"`
	Optional    bool     `json:"optional,omitempty"`
	Description string   `json:"description,omitempty"`
}

// AssetPreset is an asset configuration file offered to clients
type AssetPreset struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	File            string      `json:"file"`
	Asset           AssetConfig `json:"asset"`
	MaxCapacityMW   float64     `json:"max_capacity_mw"`
	EnergyBudgetMWh float64     `json:"energy_budget_mwh"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
