package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yegors/poh-perf/internal/api"
	"github.com/yegors/poh-perf/internal/briefing"
	"github.com/yegors/poh-perf/internal/config"
	"github.com/yegors/poh-perf/internal/dataset"
	"github.com/yegors/poh-perf/internal/performance"
	"github.com/yegors/poh-perf/internal/storage/sqlite"
	"github.com/yegors/poh-perf/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting POH performance server",
		logger.String("config", *configPath),
		logger.String("airport", cfg.Station.AirportCode))

	data, err := dataset.Load(cfg.Dataset.Path, log)
	if err != nil {
		log.Fatal("Failed to load performance dataset", logger.Error(err))
	}

	perfService, err := performance.NewService(data, log)
	if err != nil {
		log.Fatal("Failed to create performance service", logger.Error(err))
	}

	var queryStore api.QueryStore
	if cfg.Storage.Enabled {
		db, err := sql.Open("sqlite", cfg.Storage.DatabasePath)
		if err != nil {
			log.Fatal("Failed to open query history database", logger.Error(err))
		}
		defer db.Close()

		storage, err := sqlite.NewQueryStorage(db, log)
		if err != nil {
			log.Fatal("Failed to initialize query history storage", logger.Error(err))
		}
		queryStore = storage
		log.Info("Query history enabled", logger.String("path", cfg.Storage.DatabasePath))
	}

	aggregator := briefing.NewDataAggregator(perfService, cfg, log)
	router := api.NewRouter(perfService, aggregator, queryStore, cfg, log)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", logger.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", logger.Error(err))
	}
	log.Info("Server stopped")
}
