package model

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

// hourToken matches the hour in labels like "13:00" or "13:00-14:00".
var hourToken = regexp.MustCompile(`(\d+):00`)

// Hour is an hour of day (0..23). In JSON it may arrive either as a number
// or as a free-text token embedding "HH:00".
type Hour int

// UnmarshalJSON never fails: anything that is not a number or a parsable
// token decodes to 0.
func (h *Hour) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*h = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*h = 0
			return nil
		}
		*h = Hour(NormalizeHour(s))
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		*h = 0
		return nil
	}
	*h = Hour(NormalizeHour(f))
	return nil
}

func (h Hour) Int() int { return int(h) }

// NormalizeHour converts an hour given as a number or as a string containing
// "<N>:00" into an int. Unrecognised input yields 0.
func NormalizeHour(v any) int {
	switch x := v.(type) {
	case Hour:
		return int(x)
	case int:
		return x
	case int32:
		return int(x)
	case int64:
		return int(x)
	case float32:
		return floatHour(float64(x))
	case float64:
		return floatHour(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i)
		}
		if f, err := x.Float64(); err == nil {
			return floatHour(f)
		}
		return 0
	case string:
		m := hourToken.FindStringSubmatch(x)
		if m == nil {
			return 0
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func floatHour(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}
