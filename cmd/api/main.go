package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"reserve-sim/internal/api"
	"reserve-sim/internal/config"
	"reserve-sim/internal/data"
	"reserve-sim/internal/logging"
	"reserve-sim/internal/search"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_FILE"), "Path to YAML config (optional)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// A missing or malformed series is not fatal; the session starts empty and
	// a document can be uploaded later.
	series := data.NewSeriesStore(logger)
	if warning := series.LoadFile(cfg.SeriesFile); warning != "" {
		logger.Warn("starting with empty market series", "warning", warning)
	}

	router := api.NewRouter(api.Deps{
		Config: cfg,
		Series: series,
		Cache:  search.NewResultCache(cfg.Server.ResultTTL),
		Logger: logger,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("starting API server", "addr", addr, "series", cfg.SeriesFile)
	if err := router.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
