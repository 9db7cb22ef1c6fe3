// Package api wires the HTTP surface of the reserve gain simulator.
package api

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"reserve-sim/internal/api/handlers"
	"reserve-sim/internal/api/middleware"
	"reserve-sim/internal/config"
	"reserve-sim/internal/data"
	"reserve-sim/internal/search"

	"github.com/gin-gonic/gin"
)

// Deps are the long-lived session objects shared by all handlers.
type Deps struct {
	Config *config.Config
	Series *data.SeriesStore
	Cache  *search.ResultCache
	Logger *slog.Logger
}

// NewRouter builds the gin engine with middleware, API routes and, when the
// configured static directory exists, the single-page web client.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Cache == nil {
		d.Cache = search.NewResultCache(d.Config.Server.ResultTTL)
	}

	r := gin.New()
	r.Use(middleware.CORS(d.Config.Server.AllowedOrigins...))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.ErrorHandler(d.Logger))

	seriesHandler := handlers.NewSeriesHandler(d.Series, d.Logger)
	forecastHandler := handlers.NewForecastHandler(d.Series, d.Config, d.Logger)
	searchHandler := handlers.NewSearchHandler(d.Series, d.Cache, d.Config, d.Logger)
	parameterHandler := handlers.NewParameterHandler(d.Config)
	assetHandler := handlers.NewAssetHandler(d.Config.Server.AssetDir, d.Logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/series", seriesHandler.GetSeries)
		v1.PUT("/series", seriesHandler.ReplaceSeries)

		v1.GET("/parameters", parameterHandler.ListParameters)
		v1.GET("/assets", assetHandler.ListAssets)

		v1.POST("/forecast", forecastHandler.RunForecast)

		v1.POST("/search", searchHandler.RunSearch)
		v1.GET("/search/:id", searchHandler.GetSearch)
		v1.GET("/search/:id/csv", searchHandler.ExportCSV)
	}

	serveStatic(r, d.Config.Server.StaticDir, d.Logger)
	return r
}

func serveStatic(r *gin.Engine, dir string, logger *slog.Logger) {
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); err != nil {
		logger.Info("static directory not found, skipping static file serving", "dir", dir)
		return
	}

	r.Static("/assets", filepath.Join(dir, "assets"))
	r.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))

	// Anything outside /api falls through to index.html for client routing.
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
	logger.Info("serving static files", "dir", dir)
}
