package handlers

import (
	"log/slog"
	"net/http"

	"reserve-sim/internal/api/models"
	"reserve-sim/internal/data"

	"github.com/gin-gonic/gin"
)

// SeriesHandler exposes the session's market series
type SeriesHandler struct {
	store *data.SeriesStore
	log   *slog.Logger
}

// NewSeriesHandler creates a new series handler
func NewSeriesHandler(store *data.SeriesStore, logger *slog.Logger) *SeriesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SeriesHandler{store: store, log: logger}
}

// GetSeries handles GET /api/v1/series
func (h *SeriesHandler) GetSeries(c *gin.Context) {
	c.JSON(http.StatusOK, seriesResponse(h.store.Info()))
}

// ReplaceSeries handles PUT /api/v1/series. The body is a series document;
// when it cannot be parsed the current series stays in place.
func (h *SeriesHandler) ReplaceSeries(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	source := c.Query("name")
	if source == "" {
		source = "upload"
	}
	if err := h.store.Replace(source, raw); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_SERIES",
				Message: "Failed to parse data file. Please check the format.",
				Details: map[string]interface{}{
					"cause":          err.Error(),
					"current_source": h.store.Info().Source,
				},
			},
		})
		return
	}
	c.JSON(http.StatusOK, seriesResponse(h.store.Info()))
}

func seriesResponse(info data.SeriesInfo) models.SeriesResponse {
	return models.SeriesResponse{
		Source:    info.Source,
		Count:     info.Count,
		FirstDate: info.FirstDate.String(),
		LastDate:  info.LastDate.String(),
		LoadedAt:  info.LoadedAt,
		Warning:   info.Warning,
	}
}
