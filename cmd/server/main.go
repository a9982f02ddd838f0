package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	httphandler "github.com/ogurasousui/staffing-readiness-engine/internal/adapters/http/handler"
	"github.com/ogurasousui/staffing-readiness-engine/internal/adapters/repository/postgres"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/application"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/candidate"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/compliance"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/invoice"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/job"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/matching"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/timecard"
	"github.com/ogurasousui/staffing-readiness-engine/internal/platform/config"
	pg "github.com/ogurasousui/staffing-readiness-engine/internal/platform/db/postgres"
	"github.com/ogurasousui/staffing-readiness-engine/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)

	catalogRepo := postgres.NewCatalogRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	timecardRepo := postgres.NewTimecardRepository(dbPool)
	invoiceRepo := postgres.NewInvoiceRepository(dbPool)

	resolver := compliance.NewResolver(catalogRepo)
	candidateSvc := candidate.NewService(candidateRepo, resolver, nil, txManager)
	jobSvc := job.NewService(jobRepo)
	matchingSvc := matching.NewService(candidateRepo, jobRepo)
	applicationSvc := application.NewService(applicationRepo, candidateRepo, jobRepo, resolver, nil, txManager)
	timecardSvc := timecard.NewService(timecardRepo, nil, txManager)
	invoiceSvc := invoice.NewService(invoiceRepo, timecardRepo, nil, txManager)

	router := httphandler.NewRouter(
		httphandler.NewComplianceHandler(resolver),
		httphandler.NewCandidateHandler(candidateSvc),
		httphandler.NewJobHandler(jobSvc),
		httphandler.NewMatchingHandler(matchingSvc),
		httphandler.NewApplicationHandler(applicationSvc),
		httphandler.NewTimecardHandler(timecardSvc),
		httphandler.NewInvoiceHandler(invoiceSvc),
	)

	httpServer := server.New(cfg.Server, router.Handle)

	log.Printf("HTTP server listening on %s", cfg.Server.ListenAddr)

	if err := httpServer.Run(ctx); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}
