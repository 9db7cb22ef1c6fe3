package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reserve-sim/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// SeriesFile is the market series document loaded at startup.
	SeriesFile string `yaml:"series_file"`

	// Optional: load asset parameters from a separate YAML (e.g. assets/*.yaml).
	// If both AssetFile and Asset are provided, non-zero Asset fields override AssetFile.
	AssetFile string       `yaml:"asset_file"`
	Asset     AssetConfig  `yaml:"asset"`
	Search    SearchConfig `yaml:"search"`
	Server    ServerConfig `yaml:"server"`
	Log       LogConfig    `yaml:"log"`
}

type AssetConfig struct {
	Name                string   `yaml:"name"`
	ESSPowerMW          float64  `yaml:"ess_power_mw"`
	ESSEnergyMWh        float64  `yaml:"ess_energy_mwh"`
	DRPowerMW           float64  `yaml:"dr_power_mw"`
	DREnergyMWh         float64  `yaml:"dr_energy_mwh"`
	EnergyCost          float64  `yaml:"energy_cost"`
	EnergyPriceOverride *float64 `yaml:"energy_price_override,omitempty"`
	Epsilon             float64  `yaml:"epsilon"`
	BidHours            float64  `yaml:"bid_hours"`
	ExecHours           float64  `yaml:"exec_hours"`
}

type SearchConfig struct {
	HoursPerCandidate int   `yaml:"hours_per_candidate"`
	Candidates        int   `yaml:"candidates"`
	TopK              int   `yaml:"top_k"`
	ForwardHours      int   `yaml:"forward_hours"`
	HorizonHours      int   `yaml:"horizon_hours"`
	Workers           int   `yaml:"workers"`
	Seed              int64 `yaml:"seed"` // 0 = seed from the clock
}

type ServerConfig struct {
	Port      string        `yaml:"port"`
	ResultTTL time.Duration `yaml:"result_ttl"`
	StaticDir string        `yaml:"static_dir"`
	AssetDir  string        `yaml:"asset_dir"`
	// AllowedOrigins restricts CORS; empty allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Default returns the stock configuration used when no file is given.
func Default() *Config {
	c := &Config{SeriesFile: "data/market.json"}
	c.Asset = AssetFromModel(model.DefaultAssetParams())
	c.applyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not apply defaults or
// validate it. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if c.AssetFile != "" {
		loaded, err := LoadAssetFile(resolveRelative(path, c.AssetFile))
		if err != nil {
			return nil, err
		}
		c.Asset = MergeAsset(loaded, c.Asset)
	}
	if c.SeriesFile != "" {
		c.SeriesFile = resolveRelative(path, c.SeriesFile)
	}
	return &c, nil
}

// resolveRelative prefers interpreting p relative to the config file
// directory, but falls back to p as given (relative to cwd) if that doesn't
// exist.
func resolveRelative(configPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	cand := filepath.Join(filepath.Dir(configPath), p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

// ApplyEnv overlays deployment settings from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("SERIES_FILE"); v != "" {
		c.SeriesFile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.Server.StaticDir = v
	}
	if v := os.Getenv("ASSET_DIR"); v != "" {
		c.Server.AssetDir = v
	}
}

func (c *Config) applyDefaults() {
	// Unset asset fields fall back to the stock asset.
	c.Asset = MergeAsset(AssetFromModel(model.DefaultAssetParams()), c.Asset)
	s := &c.Search
	if s.HoursPerCandidate == 0 {
		s.HoursPerCandidate = 8
	}
	if s.Candidates == 0 {
		s.Candidates = 200
	}
	if s.TopK == 0 {
		s.TopK = 5
	}
	if s.ForwardHours == 0 {
		s.ForwardHours = 24
	}
	if s.HorizonHours == 0 {
		s.HorizonHours = 72
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.AssetDir == "" {
		c.Server.AssetDir = "./assets"
	}
	if c.Server.ResultTTL == 0 {
		c.Server.ResultTTL = time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Validate checks structural settings only. Asset values are not range
// checked; the ranges in the parameter catalogue are UI guidance.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	a := c.Asset
	for name, v := range map[string]float64{
		"asset.ess_power_mw":   a.ESSPowerMW,
		"asset.ess_energy_mwh": a.ESSEnergyMWh,
		"asset.dr_power_mw":    a.DRPowerMW,
		"asset.dr_energy_mwh":  a.DREnergyMWh,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0", name)
		}
	}
	s := c.Search
	if s.HoursPerCandidate <= 0 {
		return errors.New("search.hours_per_candidate must be > 0")
	}
	if s.Candidates <= 0 {
		return errors.New("search.candidates must be > 0")
	}
	if s.TopK <= 0 {
		return errors.New("search.top_k must be > 0")
	}
	if s.ForwardHours <= 0 || s.HorizonHours <= 0 {
		return errors.New("search.forward_hours and search.horizon_hours must be > 0")
	}
	if s.Workers < 0 {
		return errors.New("search.workers must be >= 0")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", c.Log.Format)
	}
	return nil
}

func (a AssetConfig) ToModelParams() model.AssetParams {
	p := model.AssetParams{
		ESSPowerMW:   a.ESSPowerMW,
		ESSEnergyMWh: a.ESSEnergyMWh,
		DRPowerMW:    a.DRPowerMW,
		DREnergyMWh:  a.DREnergyMWh,
		EnergyCost:   a.EnergyCost,
		Epsilon:      a.Epsilon,
		BidHours:     a.BidHours,
		ExecHours:    a.ExecHours,
	}
	if a.EnergyPriceOverride != nil {
		p = p.With(model.WithEnergyPrice(*a.EnergyPriceOverride))
	}
	return p
}

func AssetFromModel(p model.AssetParams) AssetConfig {
	a := AssetConfig{
		ESSPowerMW:   p.ESSPowerMW,
		ESSEnergyMWh: p.ESSEnergyMWh,
		DRPowerMW:    p.DRPowerMW,
		DREnergyMWh:  p.DREnergyMWh,
		EnergyCost:   p.EnergyCost,
		Epsilon:      p.Epsilon,
		BidHours:     p.BidHours,
		ExecHours:    p.ExecHours,
	}
	if p.EnergyPriceOverride != nil {
		pe := *p.EnergyPriceOverride
		a.EnergyPriceOverride = &pe
	}
	return a
}

type assetFileWrapper struct {
	Asset AssetConfig `yaml:"asset"`
}

// LoadAssetFile reads an asset preset (a YAML document with an `asset` key).
func LoadAssetFile(path string) (AssetConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return AssetConfig{}, err
	}
	var w assetFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return AssetConfig{}, fmt.Errorf("parse asset file %s: %w", path, err)
	}
	return w.Asset, nil
}

// MergeAsset overlays non-zero fields from override onto base.
// This is used when loading an asset file and then applying overrides from
// the config or a request.
func MergeAsset(base, override AssetConfig) AssetConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.ESSPowerMW != 0 {
		out.ESSPowerMW = override.ESSPowerMW
	}
	if override.ESSEnergyMWh != 0 {
		out.ESSEnergyMWh = override.ESSEnergyMWh
	}
	if override.DRPowerMW != 0 {
		out.DRPowerMW = override.DRPowerMW
	}
	if override.DREnergyMWh != 0 {
		out.DREnergyMWh = override.DREnergyMWh
	}
	if override.EnergyCost != 0 {
		out.EnergyCost = override.EnergyCost
	}
	if override.EnergyPriceOverride != nil {
		pe := *override.EnergyPriceOverride
		out.EnergyPriceOverride = &pe
	}
	// Note: epsilon may legitimately be 0, but a zero here is indistinguishable
	// from "not set", so it never overrides.
	if override.Epsilon != 0 {
		out.Epsilon = override.Epsilon
	}
	if override.BidHours != 0 {
		out.BidHours = override.BidHours
	}
	if override.ExecHours != 0 {
		out.ExecHours = override.ExecHours
	}
	return out
}
