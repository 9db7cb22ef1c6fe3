package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"reserve-sim/internal/analysis"
	"reserve-sim/internal/config"
	"reserve-sim/internal/data"
	"reserve-sim/internal/logging"
	"reserve-sim/internal/model"
	"reserve-sim/internal/search"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "forecast":
		cmdForecast(os.Args[2:])
	case "search":
		cmdSearch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli forecast --data data/market.json --date 2025-09-17 --hour 13")
	fmt.Println("  cli search --data data/market.json --date 2025-09-17 --n 8 --seed 42 --out results/top.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - forecast prints the expected gain for the 24 hours after the start")
	fmt.Println("  - search samples random dispatch plans over the 72-hour horizon and keeps the best")
}

type commonFlags struct {
	dataPath *string
	cfgPath  *string
	date     *string
	hour     *int
	logLevel *string
}

func registerCommon(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		dataPath: fs.String("data", "", "Path to market series JSON (overrides config series_file)"),
		cfgPath:  fs.String("config", "", "Path to YAML config (optional)"),
		date:     fs.String("date", "", "Start date YYYY-MM-DD (default: first day of the series)"),
		hour:     fs.Int("hour", 0, "Start hour of day, 0-23"),
		logLevel: fs.String("log-level", "warn", "Log level: debug, info, warn, error"),
	}
}

// load resolves config, series and start for a subcommand.
func (f commonFlags) load() (*config.Config, model.SessionInputs, *slog.Logger) {
	logger := logging.New(*f.logLevel, "text")
	slog.SetDefault(logger)

	cfg := config.Default()
	if *f.cfgPath != "" {
		loaded, err := config.Load(*f.cfgPath)
		if err != nil {
			fail("load config: %v", err)
		}
		cfg = loaded
	}
	if *f.dataPath != "" {
		cfg.SeriesFile = *f.dataPath
	}

	records := loadSeries(cfg.SeriesFile, logger)

	start := data.DefaultStart(records)
	if *f.date != "" {
		d, err := model.ParseDate(*f.date)
		if err != nil {
			fail("--date: %v", err)
		}
		start.Date = d
	}
	start.Hour = *f.hour

	return cfg, model.SessionInputs{
		Records: records,
		Asset:   cfg.Asset.ToModelParams(),
		Start:   start,
	}, logger
}

// loadSeries reads the series at path. A missing or malformed file yields an
// empty series and a logged warning.
func loadSeries(path string, logger *slog.Logger) []model.MarketRecord {
	store := data.NewSeriesStore(logger)
	store.LoadFile(path)
	return store.Records()
}

func cmdForecast(args []string) {
	fs := flag.NewFlagSet("forecast", flag.ExitOnError)
	common := registerCommon(fs)
	_ = fs.Parse(args)

	_, in, logger := common.load()

	window := data.ForwardWindow(in.Records, in.Start)
	if len(window) == 0 {
		logger.Warn("start not found in series", "date", in.Start.Date.String(), "hour", in.Start.Hour)
	}
	gains := analysis.ForecastForward(window, in.Asset)

	fmt.Printf("%-12s %-10s %-14s %-14s %-14s\n", "time", "P0", "standby", "exec", "total")
	for _, g := range gains {
		fmt.Printf("%-12s %-10.2f %-14.2f %-14.2f %-14.2f\n",
			data.FormatTimestamp(g.Date, g.Hour), g.P0, g.Standby, g.Exec, g.Total)
	}

	s := analysis.Summarize(gains)
	fmt.Printf("\nTotal=%.2f StartGain=%.2f StartP0=%.2f MaxGainHour=%d MaxGain=%.2f\n",
		s.TotalGain, s.StartGain, s.StartP0, s.MaxGainHour, s.MaxGain)
}

func cmdSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	common := registerCommon(fs)
	n := fs.Int("n", 0, "Hours per candidate (0 = config)")
	candidates := fs.Int("candidates", 0, "Number of random candidates (0 = config)")
	top := fs.Int("top", 0, "Candidates to keep (0 = config)")
	seed := fs.Int64("seed", 0, "Random seed (0 = config, then clock)")
	workers := fs.Int("workers", -1, "Parallel trial workers (-1 = config)")
	outPath := fs.String("out", "", "Optional CSV output path")
	_ = fs.Parse(args)

	cfg, in, logger := common.load()

	opts := search.Options{
		Candidates: pick(*candidates, cfg.Search.Candidates),
		TopK:       pick(*top, cfg.Search.TopK),
		Workers:    cfg.Search.Workers,
	}
	if *workers >= 0 {
		opts.Workers = *workers
	}
	s := *seed
	if s == 0 {
		s = cfg.Search.Seed
	}

	horizon := data.HorizonWindow(in.Records, in.Start)
	if len(horizon) == 0 {
		logger.Warn("start not found in series", "date", in.Start.Date.String(), "hour", in.Start.Hour)
	}

	started := time.Now()
	res := search.NewSeeded(s, opts).Search(horizon, in.Asset, pick(*n, cfg.Search.HoursPerCandidate))
	logger.Info("search completed", "trials", res.Trials, "accepted", res.Accepted, "duration", time.Since(started))

	fmt.Printf("seed=%d trials=%d accepted=%d rejected=%d budget=%.2fMWh\n",
		res.Seed, res.Trials, res.Accepted, res.Rejected, res.EnergyBudgetMWh)
	fmt.Printf("%-4s %-14s %-14s %-10s %-10s %s\n", "rank", "id", "gain", "avgP0", "energy", "hours")
	for i, c := range res.Candidates {
		fmt.Printf("%-4d %-14s %-14.2f %-10.2f %-10.2f %v\n", i+1, c.ID, c.TotalGain, c.AvgP0, c.EnergyMWh, c.Hours)
	}

	if *outPath != "" {
		if err := search.WriteCSVFile(*outPath, res.Candidates); err != nil {
			fail("write csv: %v", err)
		}
		fmt.Printf("Wrote %d rows to %s\n", res.ParamCount(), *outPath)
	}
}

func pick(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
