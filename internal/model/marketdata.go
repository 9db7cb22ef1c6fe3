package model

// MarketSeriesDocument matches the JSON shape of the market series file.
//
// Example:
//
//	{
//	  "data": [
//	    {"tranDate": "2025-09-17", "tranHour": "13:00", "marginalPrice": 3.1, "supPrice": 9500}
//	  ]
//	}
type MarketSeriesDocument struct {
	Data []MarketRecord `json:"data"`
}

// MarketRecord is one hourly observation of the supplemental reserve market.
// Unknown fields in the source document are ignored.
type MarketRecord struct {
	Date Date `json:"tranDate"`
	Hour Hour `json:"tranHour"`

	// Prices in NTD/MW·h.
	MarginalPrice float64 `json:"marginalPrice"`
	// SupPrice is the clearing price P0 used by the gain model.
	SupPrice float64 `json:"supPrice"`

	SupBidQse float64 `json:"supBidQse,omitempty"`
	SupDemand float64 `json:"supDemand,omitempty"`
}
