package handlers

import (
	"net/http"

	"reserve-sim/internal/api/models"
	"reserve-sim/internal/config"

	"github.com/gin-gonic/gin"
)

// ParameterHandler describes the configurable asset fields
type ParameterHandler struct {
	cfg *config.Config
}

// NewParameterHandler creates a new parameter handler
func NewParameterHandler(cfg *config.Config) *ParameterHandler {
	return &ParameterHandler{cfg: cfg}
}

// ListParameters handles GET /api/v1/parameters. Defaults reflect the
// server's configured asset.
func (h *ParameterHandler) ListParameters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"parameters": ParameterCatalogue(h.cfg.Asset)})
}

func bound(v float64) *float64 { return &v }

// ParameterCatalogue lists every asset field with its suggested input range.
// The ranges are guidance for clients and are not enforced.
func ParameterCatalogue(a config.AssetConfig) []models.ParameterInfo {
	var priceDefault any
	if a.EnergyPriceOverride != nil {
		priceDefault = *a.EnergyPriceOverride
	}
	return []models.ParameterInfo{
		{
			Name: "ess_power_mw", Label: "ESS power", Unit: "MW",
			Min: bound(1.1), Max: bound(3.5), Step: 0.1, Default: a.ESSPowerMW,
		},
		{
			Name: "ess_energy_mwh", Label: "ESS energy", Unit: "MWh",
			Min: bound(2.2), Max: bound(7), Step: 0.1, Default: a.ESSEnergyMWh,
		},
		{
			Name: "dr_power_mw", Label: "DR power", Unit: "MW",
			Min: bound(8), Max: bound(32), Step: 1, Default: a.DRPowerMW,
		},
		{
			Name: "dr_energy_mwh", Label: "DR energy", Unit: "MWh",
			Min: bound(15), Max: bound(60), Step: 5, Default: a.DREnergyMWh,
		},
		{
			Name: "energy_cost", Label: "Energy cost", Unit: "NTD/MWh",
			Min: bound(8000), Max: bound(10000), Step: 100, Default: a.EnergyCost,
		},
		{
			Name: "energy_price_override", Label: "Energy price", Unit: "NTD/MWh",
			Optional: true, Default: priceDefault,
			Description: "Price paid for executed energy. When unset no execution margin is earned.",
		},
		{
			Name: "epsilon", Label: "Dispatch ratio (ε)",
			Min: bound(0), Max: bound(1), Step: 0.05, Default: a.Epsilon,
		},
		{
			Name: "bid_hours", Label: "Bid duration (ΔT_b)", Unit: "h",
			Min: bound(2), Max: bound(8), Step: 1, Default: a.BidHours,
		},
		{
			Name: "exec_hours", Label: "Execution duration (ΔT_e)", Unit: "h",
			Min: bound(2), Step: 1, Default: a.ExecHours,
		},
	}
}
