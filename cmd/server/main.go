package main

import (
	"context"

	"github.com/clabops/backend-go/internal/config"
	"github.com/clabops/backend-go/internal/coordinator"
	"github.com/clabops/backend-go/internal/db"
	"github.com/clabops/backend-go/internal/handler"
	"github.com/clabops/backend-go/internal/observability"
	"github.com/clabops/backend-go/internal/pricing"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	catalog := pricing.NewDefaultCatalog(cfg.Region)
	if cfg.PriceTablePath != "" {
		loaded, err := pricing.LoadCatalogFile(cfg.PriceTablePath, cfg.Region)
		if err != nil {
			log.WithError(err).Fatal("Failed to load price table")
		}
		catalog = loaded
		log.WithField("path", cfg.PriceTablePath).Info("Loaded price table")
	}

	svc := coordinator.NewService(catalog)
	metrics := observability.NewMetrics()

	var store *db.Store
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to database")
		}
		defer pool.Close()

		store = db.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			log.WithError(err).Fatal("Failed to ensure database schema")
		}
	} else {
		log.Info("DATABASE_URL not set, analysis history disabled")
	}

	r := handler.SetupRouter(
		handler.NewTopologyHandler(svc, metrics),
		handler.NewPricingHandler(svc, metrics),
		handler.NewAnalysisHandler(svc, store, metrics),
		metrics,
		cfg.CORSAllowOrigin,
	)

	log.Infof("clabops backend starting on :%s (region %s)", cfg.ServerPort, catalog.Region())
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
