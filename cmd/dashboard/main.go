package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"StockDashboard/internal/collector"
	"StockDashboard/internal/config"
	"StockDashboard/internal/dashboard"
	"StockDashboard/internal/model"
	"StockDashboard/internal/recorder"
	"StockDashboard/internal/scheduler"
	"StockDashboard/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockDashboard starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("[FATAL] load location: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "rest":
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cfg.FetchTimeout(), loc)
	case "financego":
		fetcher = collector.NewFinanceGoFetcher(loc)
	case "mock":
		fetcher = &collector.MockFetcher{Price: 3700}
	default:
		fetcher = collector.NewYahooFetcher(cfg.DataSource.BaseURL, cfg.Proxy, cfg.FetchTimeout(), loc)
	}
	if cfg.Cache.MaxSizeMB > 0 {
		fetcher = collector.NewCachedFetcher(fetcher, cfg.Cache.MaxSizeMB, cfg.Cache.TTLSec)
		log.Printf("[INFO] fetch cache enabled: %d MB, ttl %ds", cfg.Cache.MaxSizeMB, cfg.Cache.TTLSec)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.Driver != "none" {
		if cfg.Database.Driver == "sqlite" {
			if dir := filepath.Dir(cfg.Database.DSN); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					log.Printf("[WARN] create data dir: %v", err)
				}
			}
		}
		sr, err := recorder.NewSQLRecorder(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			log.Printf("[WARN] init %s recorder failed, using noop: %v", cfg.Database.Driver, err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Validate already parsed the defaults.
	defaults := dashboard.Defaults{
		Symbol:      cfg.Defaults.Symbol,
		Start:       model.MustParseDate(cfg.Defaults.StartDate),
		End:         model.MustParseDate(cfg.Defaults.EndDate),
		RangeSlider: *cfg.Defaults.RangeSlider,
		Tab:         dashboard.TabData,
	}
	ctrl := dashboard.NewController(collector.NewCollector(fetcher), rec, defaults)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, rec, fetcher, *cfg.Schedule.RetentionDays)
	warm := collector.FetchRequest{Symbol: defaults.Symbol, Start: defaults.Start, End: defaults.End}
	if err := sched.RegisterAll(cfg.Schedule.PruneCron, cfg.Schedule.WarmCron, warm); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(ctrl),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()
	log.Printf("[INFO] StockDashboard is listening on %s. Press Ctrl+C to stop.", cfg.Server.Addr)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	log.Println("[INFO] StockDashboard stopped")
}
