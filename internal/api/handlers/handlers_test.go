package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"reserve-sim/internal/api/models"
	"reserve-sim/internal/config"
	"reserve-sim/internal/data"
	"reserve-sim/internal/search"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// seriesDoc renders days*24 hourly records starting 2025-09-17, with hour
// given as "HH:00" and the supplemental price 9000 + 100*hour.
func seriesDoc(days int) []byte {
	var rows []string
	for d := 0; d < days; d++ {
		for h := 0; h < 24; h++ {
			rows = append(rows, fmt.Sprintf(
				`{"tranDate":"2025-09-%02d","tranHour":"%02d:00","marginalPrice":3.1,"supPrice":%d}`,
				17+d, h, 9000+100*h,
			))
		}
	}
	return []byte(`{"data":[` + strings.Join(rows, ",") + `]}`)
}

type fixture struct {
	router *gin.Engine
	store  *data.SeriesStore
	cache  *search.ResultCache
	cfg    *config.Config
}

func newFixture(t *testing.T, days int) fixture {
	t.Helper()
	cfg := config.Default()
	store := data.NewSeriesStore(nil)
	if days > 0 {
		require.NoError(t, store.Replace("test", seriesDoc(days)))
	}
	cache := search.NewResultCache(time.Hour)

	series := NewSeriesHandler(store, nil)
	forecast := NewForecastHandler(store, cfg, nil)
	srch := NewSearchHandler(store, cache, cfg, nil)
	srch.now = func() time.Time { return time.Date(2025, 9, 20, 8, 0, 0, 0, time.UTC) }
	params := NewParameterHandler(cfg)

	r := gin.New()
	r.GET("/series", series.GetSeries)
	r.PUT("/series", series.ReplaceSeries)
	r.POST("/forecast", forecast.RunForecast)
	r.POST("/search", srch.RunSearch)
	r.GET("/search/:id", srch.GetSearch)
	r.GET("/search/:id/csv", srch.ExportCSV)
	r.GET("/parameters", params.ListParameters)

	return fixture{router: r, store: store, cache: cache, cfg: cfg}
}

func (f fixture) do(method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestGetSeries(t *testing.T) {
	f := newFixture(t, 2)

	w := f.do(http.MethodGet, "/series", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.SeriesResponse](t, w)
	assert.Equal(t, "test", resp.Source)
	assert.Equal(t, 48, resp.Count)
	assert.Equal(t, "2025-09-17", resp.FirstDate)
	assert.Equal(t, "2025-09-18", resp.LastDate)
}

func TestReplaceSeries(t *testing.T) {
	f := newFixture(t, 1)

	w := f.do(http.MethodPut, "/series?name=upload.json", seriesDoc(3))
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.SeriesResponse](t, w)
	assert.Equal(t, "upload.json", resp.Source)
	assert.Equal(t, 72, resp.Count)
}

func TestReplaceSeries_InvalidKeepsPrevious(t *testing.T) {
	f := newFixture(t, 1)

	w := f.do(http.MethodPut, "/series", []byte(`{"data": [`))
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[models.ErrorResponse](t, w)
	assert.Equal(t, "INVALID_SERIES", resp.Error.Code)
	assert.Equal(t, "test", resp.Error.Details["current_source"])
	assert.Len(t, f.store.Records(), 24)
}

func TestRunForecast(t *testing.T) {
	f := newFixture(t, 2)

	w := f.do(http.MethodPost, "/forecast", []byte(`{"start_date":"2025-09-17","start_hour":13}`))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.ForecastResponse](t, w)
	assert.Empty(t, resp.Warning)
	assert.Equal(t, models.StartTime{Date: "2025-09-17", Hour: 13}, resp.Start)
	require.Len(t, resp.Hours, 24)

	first := resp.Hours[0]
	assert.Equal(t, "09/17 13:00", first.Label)
	assert.Equal(t, 13, first.Hour)
	assert.Equal(t, 10300.0, first.P0)
	// 22.5 MW * 10300 * 2 h, no execution margin without a price override
	assert.InDelta(t, 463500.0, first.Total, 1e-6)
	assert.Equal(t, 0.0, first.Exec)

	assert.Equal(t, "09/18 12:00", resp.Hours[23].Label)
	assert.InDelta(t, 463500.0, resp.Summary.StartGain, 1e-6)
	assert.Equal(t, 23, resp.Summary.MaxGainHour)
}

func TestRunForecast_AssetOverride(t *testing.T) {
	f := newFixture(t, 1)

	body := `{"start_date":"2025-09-17","start_hour":5,"asset":{"energy_price_override":10000,"epsilon":0.5}}`
	w := f.do(http.MethodPost, "/forecast", []byte(body))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.ForecastResponse](t, w)
	require.NotEmpty(t, resp.Hours)
	// 0.5 * 22.5 MW * 2 h * (10000 - 9000)
	assert.InDelta(t, 22500.0, resp.Hours[0].Exec, 1e-6)
}

func TestRunForecast_DefaultStart(t *testing.T) {
	f := newFixture(t, 1)

	w := f.do(http.MethodPost, "/forecast", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.ForecastResponse](t, w)
	assert.Equal(t, models.StartTime{Date: "2025-09-17", Hour: 0}, resp.Start)
	require.Len(t, resp.Hours, 24)
	assert.Equal(t, "09/17 00:00", resp.Hours[0].Label)
}

func TestRunForecast_StartNotFound(t *testing.T) {
	f := newFixture(t, 1)

	w := f.do(http.MethodPost, "/forecast", []byte(`{"start_date":"2030-01-01"}`))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.ForecastResponse](t, w)
	assert.Empty(t, resp.Hours)
	assert.Equal(t, startNotFoundWarning, resp.Warning)
}

func TestRunForecast_BadInput(t *testing.T) {
	f := newFixture(t, 1)

	w := f.do(http.MethodPost, "/forecast", []byte(`{"start_date":"not-a-date"}`))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE", decode[models.ErrorResponse](t, w).Error.Code)

	w = f.do(http.MethodPost, "/forecast", []byte(`{"start_hour":24}`))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestRunSearch(t *testing.T) {
	f := newFixture(t, 3)

	w := f.do(http.MethodPost, "/search", []byte(`{"start_date":"2025-09-17","hours_per_candidate":3,"seed":42}`))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.SearchResponse](t, w)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, int64(42), resp.Seed)
	assert.Equal(t, 72, resp.HorizonLength)
	assert.Equal(t, 3, resp.HoursPerCandidate)
	assert.Equal(t, f.cfg.Search.Candidates, resp.Trials)
	assert.Equal(t, resp.Trials, resp.Accepted+resp.Rejected)
	assert.InDelta(t, 45.0, resp.EnergyBudgetMWh, 1e-9)
	assert.LessOrEqual(t, len(resp.Candidates), f.cfg.Search.TopK)

	for i, c := range resp.Candidates {
		assert.Equal(t, i+1, c.Rank)
		assert.Len(t, c.Params, 3)
		assert.LessOrEqual(t, c.EnergyMWh, resp.EnergyBudgetMWh)
		if i > 0 {
			assert.GreaterOrEqual(t, resp.Candidates[i-1].TotalGain, c.TotalGain)
		}
	}
	assert.Equal(t, 1, f.cache.Len())
}

func TestRunSearch_SameSeedSameResult(t *testing.T) {
	f := newFixture(t, 3)
	body := []byte(`{"hours_per_candidate":4,"seed":7}`)

	a := decode[models.SearchResponse](t, f.do(http.MethodPost, "/search", body))
	b := decode[models.SearchResponse](t, f.do(http.MethodPost, "/search", body))

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Candidates, b.Candidates)
}

func TestRunSearch_ClampsHoursToSeries(t *testing.T) {
	f := newFixture(t, 0)
	require.NoError(t, f.store.Replace("short", []byte(
		`{"data":[{"tranDate":"2025-09-17","tranHour":"00:00","supPrice":9000},`+
			`{"tranDate":"2025-09-17","tranHour":"01:00","supPrice":9100}]}`)))

	w := f.do(http.MethodPost, "/search", []byte(`{"hours_per_candidate":8,"seed":1}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[models.SearchResponse](t, w).HoursPerCandidate)
}

func TestRunSearch_Validation(t *testing.T) {
	f := newFixture(t, 1)

	w := f.do(http.MethodPost, "/search", []byte(`{"hours_per_candidate":100}`))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestRunSearch_EmptySeries(t *testing.T) {
	f := newFixture(t, 0)

	w := f.do(http.MethodPost, "/search", []byte(`{"seed":3}`))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.SearchResponse](t, w)
	assert.Empty(t, resp.Candidates)
	assert.Equal(t, 0, resp.Trials)
	assert.Equal(t, startNotFoundWarning, resp.Warning)
}

func TestGetSearchAndExport(t *testing.T) {
	f := newFixture(t, 3)

	created := decode[models.SearchResponse](t,
		f.do(http.MethodPost, "/search", []byte(`{"start_date":"2025-09-18","start_hour":6,"hours_per_candidate":2,"seed":9}`)))
	require.NotEmpty(t, created.Candidates)

	w := f.do(http.MethodGet, "/search/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.SearchResponse](t, w)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, models.StartTime{Date: "2025-09-18", Hour: 6}, got.Start)
	assert.Equal(t, created.Candidates, got.Candidates)

	w = f.do(http.MethodGet, "/search/"+created.ID+"/csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, `attachment; filename="top-candidates-2025-09-20.csv"`, w.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Equal(t, "candidateId,hour,Cb,dtb,dte,epsilon,gain,P0", lines[0])
	assert.Len(t, lines, 1+2*len(created.Candidates))
	assert.True(t, strings.HasPrefix(lines[1], created.Candidates[0].ID+","))
}

func TestGetSearch_NotFound(t *testing.T) {
	f := newFixture(t, 1)

	for _, path := range []string{"/search/missing", "/search/missing/csv"} {
		w := f.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "RESULT_NOT_FOUND", decode[models.ErrorResponse](t, w).Error.Code)
	}
}

func TestListParameters(t *testing.T) {
	f := newFixture(t, 0)

	w := f.do(http.MethodGet, "/parameters", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Parameters []models.ParameterInfo `json:"parameters"`
	}](t, w)
	require.Len(t, resp.Parameters, 9)

	byName := map[string]models.ParameterInfo{}
	for _, p := range resp.Parameters {
		byName[p.Name] = p
	}
	ess := byName["ess_power_mw"]
	require.NotNil(t, ess.Min)
	assert.Equal(t, 1.1, *ess.Min)
	assert.Equal(t, 3.5, *ess.Max)
	assert.Equal(t, 2.5, ess.Default)

	price := byName["energy_price_override"]
	assert.True(t, price.Optional)
	assert.Nil(t, price.Default)
	assert.Nil(t, byName["exec_hours"].Max)
}

func TestListAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site_a.yaml"), []byte(`
asset:
  name: Site A
  ess_power_mw: 3
  ess_energy_mwh: 6
  dr_power_mw: 10
  dr_energy_mwh: 20
  energy_cost: 9000
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("asset: ["), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	h := NewAssetHandler(dir, nil)
	r := gin.New()
	r.GET("/assets", h.ListAssets)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets", nil))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Assets []models.AssetPreset `json:"assets"`
	}](t, w)
	require.Len(t, resp.Assets, 1)
	a := resp.Assets[0]
	assert.Equal(t, "site_a", a.ID)
	assert.Equal(t, "Site A", a.Name)
	assert.Equal(t, 13.0, a.MaxCapacityMW)
	assert.Equal(t, 26.0, a.EnergyBudgetMWh)
}

func TestListAssets_MissingDir(t *testing.T) {
	h := NewAssetHandler(filepath.Join(t.TempDir(), "nope"), nil)
	r := gin.New()
	r.GET("/assets", h.ListAssets)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"assets":[]}`, w.Body.String())
}
