package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"rentcheck/internal/audit"
	compliancehandler "rentcheck/internal/compliance/handler"
	compliancemetrics "rentcheck/internal/compliance/metrics"
	"rentcheck/internal/compliance/oracle"
	complianceservice "rentcheck/internal/compliance/service"
	compliancestore "rentcheck/internal/compliance/store"
	httpapi "rentcheck/internal/http"
	"rentcheck/internal/platform/config"
	"rentcheck/internal/platform/httpserver"
	"rentcheck/internal/platform/logger"
	"rentcheck/internal/platform/postgres"
	platformredis "rentcheck/internal/platform/redis"
	propertyhandler "rentcheck/internal/property/handler"
	propertyservice "rentcheck/internal/property/service"
	propertystore "rentcheck/internal/property/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var (
		propStore propertystore.Store
		compStore compliancestore.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres unavailable", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		propStore = propertystore.NewPostgres(db)
		compStore = compliancestore.NewPostgres(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		propStore = propertystore.NewInMemory()
		compStore = compliancestore.NewInMemory()
	}

	var publisher audit.Publisher
	if len(cfg.Audit.Brokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(cfg.Audit.Brokers, cfg.Audit.Topic, log)
		if err != nil {
			log.Error("kafka unavailable", "error", err)
			os.Exit(1)
		}
		publisher = kafka
	} else {
		publisher = audit.NewLogPublisher(log)
	}
	defer publisher.Close()

	var ruleOracle oracle.Client
	if cfg.Oracle.APIKey != "" {
		gemini, err := oracle.NewGemini(ctx, cfg.Oracle.APIKey, cfg.Oracle.Model, cfg.Oracle.Timeout, log)
		if err != nil {
			log.Error("oracle init failed", "error", err)
			os.Exit(1)
		}
		ruleOracle = gemini
	} else {
		log.Warn("GEMINI_API_KEY not set, checklists will stay empty")
		ruleOracle = oracle.Disabled{}
	}

	complianceOpts := []complianceservice.Option{
		complianceservice.WithMetrics(compliancemetrics.New()),
		complianceservice.WithLogger(log),
		complianceservice.WithAudit(publisher),
	}
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		complianceOpts = append(complianceOpts,
			complianceservice.WithLease(complianceservice.NewRedisLease(redisClient.Client, cfg.Redis.LeaseTTL)))
	}

	compliance := complianceservice.New(compStore, ruleOracle, complianceOpts...)
	property := propertyservice.New(propStore, compliance, compliance,
		propertyservice.WithLogger(log),
		propertyservice.WithAudit(publisher),
	)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:     log,
		AdminToken: cfg.AdminToken,
		Property:   propertyhandler.New(property, log),
		Compliance: compliancehandler.New(compliance, property, log),
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting rentcheck", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
