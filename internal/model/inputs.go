package model

// StartTime is the user-selected anchor for forecast and horizon windows.
type StartTime struct {
	Date Date
	Hour int
}

// SessionInputs is what one forecast/search computation consumes: the sorted
// series, the asset parameters and the selected start.
type SessionInputs struct {
	Records []MarketRecord
	Asset   AssetParams
	Start   StartTime
}
