package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"reserve-sim/internal/api/models"
	"reserve-sim/internal/config"
	"reserve-sim/internal/data"
	"reserve-sim/internal/model"

	"github.com/gin-gonic/gin"
)

const startNotFoundWarning = "start date/hour not found in the market series"

func abortWithError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// resolveStart turns the request's start fields into a StartTime, defaulting
// to the first day of the series at hour 0.
func resolveStart(records []model.MarketRecord, req models.StartRequest) (model.StartTime, error) {
	start := data.DefaultStart(records)
	if req.StartDate != "" {
		d, err := model.ParseDate(req.StartDate)
		if err != nil {
			return model.StartTime{}, fmt.Errorf("start_date must be in YYYY-MM-DD format")
		}
		start.Date = d
	}
	if req.StartHour != nil {
		start.Hour = *req.StartHour
	}
	return start, nil
}

// assetParams overlays request overrides on the configured asset.
func assetParams(base config.AssetConfig, req models.AssetConfig) model.AssetParams {
	merged := config.MergeAsset(base, config.AssetConfig{
		Name:                req.Name,
		ESSPowerMW:          req.ESSPowerMW,
		ESSEnergyMWh:        req.ESSEnergyMWh,
		DRPowerMW:           req.DRPowerMW,
		DREnergyMWh:         req.DREnergyMWh,
		EnergyCost:          req.EnergyCost,
		EnergyPriceOverride: req.EnergyPriceOverride,
		Epsilon:             req.Epsilon,
		BidHours:            req.BidHours,
		ExecHours:           req.ExecHours,
	})
	return merged.ToModelParams()
}

// sessionInputs gathers the current series, the effective asset and the
// resolved start for one request.
func sessionInputs(store *data.SeriesStore, asset config.AssetConfig, start models.StartRequest, override models.AssetConfig) (model.SessionInputs, error) {
	records := store.Records()
	st, err := resolveStart(records, start)
	if err != nil {
		return model.SessionInputs{}, err
	}
	return model.SessionInputs{
		Records: records,
		Asset:   assetParams(asset, override),
		Start:   st,
	}, nil
}

func startView(s model.StartTime) models.StartTime {
	return models.StartTime{Date: s.Date.String(), Hour: s.Hour}
}

// bindOptionalJSON binds the request body into obj; an empty body leaves obj
// at its zero value.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func badRequest(c *gin.Context, code string, err error) {
	abortWithError(c, http.StatusBadRequest, code, err.Error())
}
