package data

import (
	"log/slog"
	"sync"
	"time"

	"reserve-sim/internal/model"
)

// SeriesInfo summarises the series currently held by a SeriesStore.
type SeriesInfo struct {
	Source    string
	Count     int
	FirstDate model.Date
	LastDate  model.Date
	LoadedAt  time.Time
	Warning   string
}

// SeriesStore holds the session's market series. Records are sorted once on
// load and never mutated afterwards; Replace swaps the whole slice.
type SeriesStore struct {
	mu      sync.RWMutex
	records []model.MarketRecord
	info    SeriesInfo
	log     *slog.Logger
}

func NewSeriesStore(logger *slog.Logger) *SeriesStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SeriesStore{
		records: []model.MarketRecord{},
		log:     logger,
	}
}

// LoadFile reads the series from path. On failure the store falls back to an
// empty series and the returned warning describes the problem; the error is
// not fatal to the session.
func (s *SeriesStore) LoadFile(path string) (warning string) {
	records, err := LoadMarketJSON(path)
	if err != nil {
		s.log.Warn("market series unavailable, continuing with empty series", "path", path, "error", err)
		s.set(path, []model.MarketRecord{}, "failed to load market data: "+err.Error())
		return s.Info().Warning
	}
	s.set(path, records, "")
	s.log.Info("market series loaded", "path", path, "records", len(records))
	return ""
}

// Replace decodes raw as a series document and swaps it in. When decoding
// fails the previous series is kept and the error is returned.
func (s *SeriesStore) Replace(source string, raw []byte) error {
	records, err := ParseMarketJSON(raw)
	if err != nil {
		s.log.Warn("rejected replacement market series", "source", source, "error", err)
		return err
	}
	s.set(source, records, "")
	s.log.Info("market series replaced", "source", source, "records", len(records))
	return nil
}

// Records returns the current series. Callers must treat it as read-only.
func (s *SeriesStore) Records() []model.MarketRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

func (s *SeriesStore) Info() SeriesInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

func (s *SeriesStore) set(source string, records []model.MarketRecord, warning string) {
	info := SeriesInfo{
		Source:   source,
		Count:    len(records),
		LoadedAt: time.Now(),
		Warning:  warning,
	}
	if len(records) > 0 {
		info.FirstDate = records[0].Date
		info.LastDate = records[len(records)-1].Date
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.info = info
}
