package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHour(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"int", 7, 7},
		{"float", 13.0, 13},
		{"hour type", Hour(22), 22},
		{"plain token", "05:00", 5},
		{"range token", "13:00-14:00", 13},
		{"embedded token", "hour 9:00 slot", 9},
		{"no digits", "noon", 0},
		{"minutes only", "13:30", 0},
		{"json number", json.Number("11"), 11},
		{"nil", nil, 0},
		{"struct", struct{}{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeHour(tc.in))
		})
	}
}

func TestHour_UnmarshalJSON(t *testing.T) {
	var rows []struct {
		H Hour `json:"h"`
	}
	raw := `[{"h": 3}, {"h": "17:00"}, {"h": "bogus"}, {"h": null}, {"h": {"x": 1}}, {"h": 4.0}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &rows))
	got := make([]int, len(rows))
	for i, r := range rows {
		got[i] = r.H.Int()
	}
	assert.Equal(t, []int{3, 17, 0, 0, 0, 4}, got)
}

func TestParseDate_DropsTimeAndOffset(t *testing.T) {
	plain, err := ParseDate("2025-09-17")
	require.NoError(t, err)

	late, err := ParseDate("2025-09-17T23:30:00-08:00")
	require.NoError(t, err)

	early, err := ParseDate("2025-09-17T00:15:00+09:00")
	require.NoError(t, err)

	assert.True(t, plain.Equal(late))
	assert.True(t, plain.Equal(early))
	assert.Equal(t, time.UTC, plain.Time().Location())
	assert.Equal(t, "2025-09-17", plain.String())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("17/09")
	assert.Error(t, err)

	_, err = ParseDate("2025-13-45")
	assert.Error(t, err)
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	taipei := time.FixedZone("UTC+8", 8*3600)
	ts := time.Date(2025, 9, 18, 1, 0, 0, 0, taipei) // still the 17th in UTC
	assert.Equal(t, "2025-09-18", DateOf(ts).String())
}

func TestMarketSeriesDocument_Decode(t *testing.T) {
	raw := `{"data": [
		{"tranDate": "2025-09-17", "tranHour": "13:00", "marginalPrice": 2.5, "supPrice": 9500, "extra": "ignored"},
		{"tranDate": "2025-09-17T00:00:00+08:00", "tranHour": 14, "marginalPrice": 2.6, "supPrice": 9400, "supDemand": 120}
	]}`
	var doc MarketSeriesDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Len(t, doc.Data, 2)

	assert.Equal(t, 13, doc.Data[0].Hour.Int())
	assert.Equal(t, 14, doc.Data[1].Hour.Int())
	assert.True(t, doc.Data[0].Date.Equal(doc.Data[1].Date))
	assert.InDelta(t, 9500, doc.Data[0].SupPrice, 1e-9)
	assert.InDelta(t, 120, doc.Data[1].SupDemand, 1e-9)
}

func TestAssetParams_DerivedValues(t *testing.T) {
	p := DefaultAssetParams()
	assert.InDelta(t, 22.5, p.MaxCapacityMW(), 1e-9)
	assert.InDelta(t, 45, p.EnergyBudgetMWh(), 1e-9)
	assert.InDelta(t, 9000, p.ExecutionPrice(), 1e-9)

	p = p.With(WithEnergyPrice(9600))
	assert.InDelta(t, 9600, p.ExecutionPrice(), 1e-9)
}

func TestAssetParams_WithDoesNotMutateBase(t *testing.T) {
	base := DefaultAssetParams().With(WithEnergyPrice(9600))

	derived := base.With(WithBidHours(6), WithExecHours(3), WithEpsilon(0.5), WithEnergyPrice(9900))

	assert.InDelta(t, 2, base.BidHours, 1e-9)
	assert.InDelta(t, 2, base.ExecHours, 1e-9)
	assert.InDelta(t, 0.25, base.Epsilon, 1e-9)
	assert.InDelta(t, 9600, base.ExecutionPrice(), 1e-9)

	assert.InDelta(t, 6, derived.BidHours, 1e-9)
	assert.InDelta(t, 3, derived.ExecHours, 1e-9)
	assert.InDelta(t, 0.5, derived.Epsilon, 1e-9)
	assert.InDelta(t, 9900, derived.ExecutionPrice(), 1e-9)
}

func TestAssetParams_WithLaterOverrideWins(t *testing.T) {
	p := DefaultAssetParams().With(WithEpsilon(0.1), WithEpsilon(0.5), WithEnergyPrice(9500), WithoutEnergyPrice())
	assert.InDelta(t, 0.5, p.Epsilon, 1e-9)
	assert.Nil(t, p.EnergyPriceOverride)
}

func TestCandidateParam_ExecutedEnergy(t *testing.T) {
	cp := CandidateParam{Cb: 20, DTE: 3, Epsilon: 0.25}
	assert.InDelta(t, 15, cp.ExecutedEnergyMWh(), 1e-9)
}
