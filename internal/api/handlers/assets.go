package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"reserve-sim/internal/api/models"
	"reserve-sim/internal/config"

	"github.com/gin-gonic/gin"
)

// AssetHandler lists the asset presets found in a directory of YAML files
type AssetHandler struct {
	assetDir string
	log      *slog.Logger
}

// NewAssetHandler creates a new asset handler reading presets from dir
func NewAssetHandler(dir string, logger *slog.Logger) *AssetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	logger.Debug("asset presets directory", "dir", dir)
	return &AssetHandler{assetDir: dir, log: logger}
}

// ListAssets handles GET /api/v1/assets
func (h *AssetHandler) ListAssets(c *gin.Context) {
	presets := []models.AssetPreset{}

	entries, err := os.ReadDir(h.assetDir)
	if err != nil {
		h.log.Warn("failed to read asset directory", "dir", h.assetDir, "error", err)
		c.JSON(http.StatusOK, gin.H{"assets": presets})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		path := filepath.Join(h.assetDir, entry.Name())
		preset, err := loadAssetPreset(path, entry.Name())
		if err != nil {
			h.log.Warn("skipping invalid asset file", "path", path, "error", err)
			continue
		}
		presets = append(presets, preset)
	}

	c.JSON(http.StatusOK, gin.H{"assets": presets})
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

func loadAssetPreset(path, filename string) (models.AssetPreset, error) {
	a, err := config.LoadAssetFile(path)
	if err != nil {
		return models.AssetPreset{}, err
	}

	// "site_a.yaml" -> "site_a"
	id := strings.TrimSuffix(filename, filepath.Ext(filename))
	name := a.Name
	if name == "" {
		name = id
	}
	p := a.ToModelParams()

	return models.AssetPreset{
		ID:   id,
		Name: name,
		File: path,
		Asset: models.AssetConfig{
			Name:                a.Name,
			ESSPowerMW:          a.ESSPowerMW,
			ESSEnergyMWh:        a.ESSEnergyMWh,
			DRPowerMW:           a.DRPowerMW,
			DREnergyMWh:         a.DREnergyMWh,
			EnergyCost:          a.EnergyCost,
			EnergyPriceOverride: a.EnergyPriceOverride,
			Epsilon:             a.Epsilon,
			BidHours:            a.BidHours,
			ExecHours:           a.ExecHours,
		},
		MaxCapacityMW:   p.MaxCapacityMW(),
		EnergyBudgetMWh: p.EnergyBudgetMWh(),
	}, nil
}
