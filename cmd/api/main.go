package main

import (
	"context"
	"errors"
	"farmregistry/cmd/internal/config"
	"farmregistry/cmd/internal/domain/sqlite"
	"farmregistry/cmd/internal/domain/sqlite/repository"
	"farmregistry/cmd/internal/http/handler"
	farmmw "farmregistry/cmd/internal/http/middleware"
	"farmregistry/cmd/internal/infrastructure/minhareceita"
	"farmregistry/cmd/internal/registry"
	"farmregistry/cmd/internal/service"
	"farmregistry/cmd/internal/service/jobs"
	"farmregistry/cmd/internal/utils/validators"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	validate := validators.New()

	// Init SQLite
	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		panic(err)
	}

	// Getting repos
	producerRepo := repository.NewProducerRepository(db)
	companyRepo := repository.NewCompanyRepository(db)

	// Getting services
	producerService := service.NewProducerService(producerRepo, validate)
	documentService := service.NewDocumentService(
		minhareceita.NewClient(cfg.MinhaReceitaURL, cfg.LookupTimeout),
		companyRepo,
	)

	// The dashboard reads from the store, which reads through the service
	store := registry.New(producerService)
	producerService.Registry = store

	// Background jobs
	go jobs.NewRegistryRefresher(store, cfg.RefreshInterval).Start(ctx)
	go jobs.NewCompanyCacheCleaner(companyRepo).Start(ctx)

	// Getting handlers
	producerRoutes := handler.NewProducerDefault(producerService)
	dashboardRoutes := handler.NewDashboardDefault(store)
	documentRoutes := handler.NewDocumentDefault(documentService)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.LogLevel)
	e.Use(middleware.Recover())
	e.Use(farmmw.NewRequestID())
	e.Use(farmmw.NewRequestLogger())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))

	// Producers
	e.GET("/api/producers", producerRoutes.GetProducers)
	e.GET("/api/producers/:id", producerRoutes.GetProducer)
	e.POST("/api/producers", producerRoutes.CreateProducer)
	e.PUT("/api/producers/:id", producerRoutes.UpdateProducer)
	e.DELETE("/api/producers/:id", producerRoutes.DeleteProducer)

	// Dashboard
	e.GET("/api/dashboard", dashboardRoutes.GetDashboard)

	// CPF/CNPJ helper
	e.GET("/api/documents/:document", documentRoutes.GetDocument)

	// Docker Compose healthcheck
	e.GET("/health", handler.HealthCheck)

	go func() {
		if err := e.Start(cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}
