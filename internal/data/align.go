package data

import (
	"sort"
	"time"

	"reserve-sim/internal/model"
)

// NotFound is returned by FindStartIndex when no record matches.
const NotFound = -1

const (
	ForwardHours = 24
	HorizonHours = 72
)

// SortChronologically orders records by calendar day, then hour of day.
// The sort is stable and happens in place; the same slice is returned.
func SortChronologically(records []model.MarketRecord) []model.MarketRecord {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Hour < b.Hour
	})
	return records
}

// FindStartIndex returns the position of the first record on targetDate at
// targetHour, or NotFound.
func FindStartIndex(records []model.MarketRecord, targetDate model.Date, targetHour int) int {
	for i, r := range records {
		if r.Date.Equal(targetDate) && r.Hour.Int() == targetHour {
			return i
		}
	}
	return NotFound
}

// TakeWindow returns count consecutive records beginning at start. The
// window wraps to the front of the series instead of stopping at its end, so
// a valid start always yields exactly count records.
func TakeWindow(records []model.MarketRecord, start, count int) []model.MarketRecord {
	if start < 0 || start >= len(records) || count <= 0 {
		return []model.MarketRecord{}
	}
	out := make([]model.MarketRecord, count)
	for i := range out {
		out[i] = records[(start+i)%len(records)]
	}
	return out
}

// ForwardWindow is the 24-record window used for the expected gain forecast.
func ForwardWindow(records []model.MarketRecord, start model.StartTime) []model.MarketRecord {
	return TakeWindow(records, FindStartIndex(records, start.Date, start.Hour), ForwardHours)
}

// HorizonWindow is the 72-record window used for the candidate search.
func HorizonWindow(records []model.MarketRecord, start model.StartTime) []model.MarketRecord {
	return TakeWindow(records, FindStartIndex(records, start.Date, start.Hour), HorizonHours)
}

// FormatTimestamp renders midnight of date plus hourOffset hours as "MM/DD HH:mm".
func FormatTimestamp(date model.Date, hourOffset int) string {
	return date.Time().Add(time.Duration(hourOffset) * time.Hour).Format("01/02 15:04")
}

// DefaultStart is the first record's day at hour 0, or the zero StartTime for
// an empty series.
func DefaultStart(records []model.MarketRecord) model.StartTime {
	if len(records) == 0 {
		return model.StartTime{}
	}
	return model.StartTime{Date: records[0].Date, Hour: 0}
}
