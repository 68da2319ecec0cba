// cmd/adcraft-web/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"adcraft/internal/ads"
	"adcraft/internal/ai"
	"adcraft/internal/common/config"
	"adcraft/internal/common/database"
	"adcraft/internal/common/logger"
	"adcraft/internal/common/observability"
	"adcraft/internal/exporter"
	"adcraft/internal/pipeline"
	"adcraft/internal/scraper"
	"adcraft/internal/validation"
	"adcraft/internal/web"
)

func buildRunner(cfg *config.Config, log logger.Logger) (*pipeline.Runner, error) {
	generator, err := ai.NewGenerator(cfg.AI, cfg.Limits, log)
	if err != nil {
		return nil, err
	}

	exp, err := exporter.New(cfg.Export.OutputDir, log)
	if err != nil {
		return nil, err
	}

	return pipeline.NewRunner(
		scraper.NewFetcher(cfg.Scraper, log),
		generator,
		validation.New(cfg.Limits),
		exp,
		log,
	), nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "adcraft-web: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level)
	defer log.Sync()

	obs := observability.New("adcraft-web")
	defer obs.Shutdown()

	runner, err := buildRunner(cfg, log)
	if err != nil {
		return err
	}
	runner.WithObservability(obs)

	var adsService *ads.Service
	if client, err := ads.NewClient(cfg.Ads.CredentialsPath, log); err != nil {
		log.Warn("Ad platform credentials unavailable, ads endpoints disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		adsService = ads.NewService(client, cfg.Ads, log)
	}

	var sessions *web.SessionStore
	if rdb, err := database.NewRedis(cfg.Database.Redis); err != nil {
		log.Warn("Redis unavailable, result sessions disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		if err := rdb.Ping(context.Background()); err != nil {
			log.Warn("Redis ping failed, result sessions disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer rdb.Close()
			sessions = web.NewSessionStore(rdb, cfg.Web.SessionTTLDuration())
		}
	}

	server := web.NewServer(*cfg, runner, adsService, sessions, log)

	log.Info("Starting web server", map[string]interface{}{
		"address":  cfg.Web.ListenAddress,
		"provider": cfg.AI.Provider,
	})
	return server.Run()
}
