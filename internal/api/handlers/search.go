package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"reserve-sim/internal/api/models"
	"reserve-sim/internal/config"
	"reserve-sim/internal/data"
	"reserve-sim/internal/search"

	"github.com/gin-gonic/gin"
)

// SearchHandler runs candidate searches and serves their cached results
type SearchHandler struct {
	store *data.SeriesStore
	cache *search.ResultCache
	cfg   *config.Config
	log   *slog.Logger
	now   func() time.Time
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(store *data.SeriesStore, cache *search.ResultCache, cfg *config.Config, logger *slog.Logger) *SearchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandler{store: store, cache: cache, cfg: cfg, log: logger, now: time.Now}
}

// RunSearch handles POST /api/v1/search
func (h *SearchHandler) RunSearch(c *gin.Context) {
	var req models.SearchRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	in, err := sessionInputs(h.store, h.cfg.Asset, req.StartRequest, req.Asset)
	if err != nil {
		badRequest(c, "INVALID_DATE", err)
		return
	}

	hours := req.HoursPerCandidate
	if hours == 0 {
		hours = h.cfg.Search.HoursPerCandidate
	}
	hours = clampHours(hours, h.cfg.Search.HorizonHours, len(in.Records))

	seed := req.Seed
	if seed == 0 {
		seed = h.cfg.Search.Seed
	}
	opts := search.Options{
		Candidates: h.cfg.Search.Candidates,
		TopK:       h.cfg.Search.TopK,
		Workers:    h.cfg.Search.Workers,
	}
	if req.Candidates > 0 {
		opts.Candidates = req.Candidates
	}
	if req.TopK > 0 {
		opts.TopK = req.TopK
	}

	idx := data.FindStartIndex(in.Records, in.Start.Date, in.Start.Hour)
	horizon := data.TakeWindow(in.Records, idx, h.cfg.Search.HorizonHours)

	started := time.Now()
	res := search.NewSeeded(seed, opts).Search(horizon, in.Asset, hours)
	res.Start = in.Start
	entry := h.cache.Put(res)

	h.log.Info("search completed",
		"id", entry.ID,
		"seed", res.Seed,
		"sampler", res.Sampler,
		"trials", res.Trials,
		"accepted", res.Accepted,
		"returned", len(res.Candidates),
		"duration", time.Since(started),
	)

	resp := searchResponse(entry)
	if idx == data.NotFound {
		resp.Warning = startNotFoundWarning
	}
	c.JSON(http.StatusOK, resp)
}

// GetSearch handles GET /api/v1/search/:id
func (h *SearchHandler) GetSearch(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, searchResponse(entry))
}

// ExportCSV handles GET /api/v1/search/:id/csv
func (h *SearchHandler) ExportCSV(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}
	body, err := search.ToCSV(entry.Result.Candidates)
	if err != nil {
		h.log.Error("csv export failed", "id", entry.ID, "error", err)
		abortWithError(c, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+search.ExportFilename(h.now())+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}

func (h *SearchHandler) lookup(c *gin.Context) (search.CacheEntry, bool) {
	id := c.Param("id")
	entry, ok := h.cache.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RESULT_NOT_FOUND",
				Message: "search result not found or expired",
				Details: map[string]interface{}{"id": id},
			},
		})
		return search.CacheEntry{}, false
	}
	return entry, true
}

// clampHours limits the requested hours per candidate to the slots a horizon
// over this series can hold.
func clampHours(hours, horizon, records int) int {
	limit := horizon
	if records < limit {
		limit = records
	}
	if limit > 0 && hours > limit {
		return limit
	}
	return hours
}

func searchResponse(entry search.CacheEntry) models.SearchResponse {
	res := entry.Result
	resp := models.SearchResponse{
		ID:                entry.ID,
		Start:             startView(res.Start),
		Seed:              res.Seed,
		HoursPerCandidate: res.HoursPerCandidate,
		HorizonLength:     res.HorizonLength,
		Trials:            res.Trials,
		Accepted:          res.Accepted,
		Rejected:          res.Rejected,
		EnergyBudgetMWh:   res.EnergyBudgetMWh,
		Candidates:        make([]models.CandidateView, len(res.Candidates)),
	}
	for i, cand := range res.Candidates {
		view := models.CandidateView{
			Rank:      i + 1,
			ID:        cand.ID,
			Hours:     cand.Hours,
			TotalGain: cand.TotalGain,
			AvgP0:     cand.AvgP0,
			EnergyMWh: cand.EnergyMWh,
			Params:    make([]models.ParamView, len(cand.Params)),
		}
		for j, p := range cand.Params {
			view.Params[j] = models.ParamView{
				Date:    p.Date.String(),
				Hour:    p.Hour,
				Cb:      p.Cb,
				DTB:     p.DTB,
				DTE:     p.DTE,
				Epsilon: p.Epsilon,
				Gain:    p.Gain,
				P0:      p.P0,
			}
		}
		resp.Candidates[i] = view
	}
	return resp
}
