package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"reserve-sim/internal/model"
)

// ErrMalformedSeries is returned when a series document cannot be decoded.
var ErrMalformedSeries = errors.New("malformed market series document")

// LoadMarketJSON reads a series document from disk and returns its records
// sorted chronologically.
func LoadMarketJSON(path string) ([]model.MarketRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read market series %s: %w", path, err)
	}
	records, err := ParseMarketJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ParseMarketJSON decodes a `{"data": [...]}` document. A document without a
// data field yields an empty, non-nil series.
func ParseMarketJSON(raw []byte) ([]model.MarketRecord, error) {
	var doc model.MarketSeriesDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSeries, err)
	}
	if doc.Data == nil {
		return []model.MarketRecord{}, nil
	}
	return SortChronologically(doc.Data), nil
}
