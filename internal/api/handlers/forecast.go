package handlers

import (
	"log/slog"
	"net/http"

	"reserve-sim/internal/analysis"
	"reserve-sim/internal/api/models"
	"reserve-sim/internal/config"
	"reserve-sim/internal/data"
	"reserve-sim/internal/model"

	"github.com/gin-gonic/gin"
)

// ForecastHandler computes the deterministic forward forecast
type ForecastHandler struct {
	store *data.SeriesStore
	cfg   *config.Config
	log   *slog.Logger
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(store *data.SeriesStore, cfg *config.Config, logger *slog.Logger) *ForecastHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ForecastHandler{store: store, cfg: cfg, log: logger}
}

// RunForecast handles POST /api/v1/forecast
func (h *ForecastHandler) RunForecast(c *gin.Context) {
	var req models.ForecastRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	in, err := sessionInputs(h.store, h.cfg.Asset, req.StartRequest, req.Asset)
	if err != nil {
		badRequest(c, "INVALID_DATE", err)
		return
	}
	start := in.Start

	idx := data.FindStartIndex(in.Records, start.Date, start.Hour)
	window := data.TakeWindow(in.Records, idx, h.cfg.Search.ForwardHours)
	gains := analysis.ForecastForward(window, in.Asset)

	resp := models.ForecastResponse{
		Start:   startView(start),
		Summary: summaryView(analysis.Summarize(gains)),
		Hours:   make([]models.ForecastHour, len(gains)),
	}
	if idx == data.NotFound {
		resp.Warning = startNotFoundWarning
	}
	for i, g := range gains {
		resp.Hours[i] = forecastHourView(g)
	}

	h.log.Debug("forecast computed", "start", start.Date.String(), "hour", start.Hour, "hours", len(gains))
	c.JSON(http.StatusOK, resp)
}

func summaryView(s analysis.ForecastSummary) models.ForecastSummary {
	return models.ForecastSummary{
		TotalGain:     s.TotalGain,
		StartGain:     s.StartGain,
		StartP0:       s.StartP0,
		StartCapacity: s.StartCapacity,
		MaxGainHour:   s.MaxGainHour,
		MaxGain:       s.MaxGain,
		MeanP0:        s.MeanP0,
	}
}

func forecastHourView(g model.GainResult) models.ForecastHour {
	return models.ForecastHour{
		Label:   data.FormatTimestamp(g.Date, g.Hour),
		Date:    g.Date.String(),
		Hour:    g.Hour,
		P0:      g.P0,
		Standby: g.Standby,
		Exec:    g.Exec,
		Total:   g.Total,
		Cb:      g.Cb,
	}
}
