package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"facility-survey/internal/common/config"
	"facility-survey/internal/common/middleware"
	"facility-survey/internal/survey/handlers"
	"facility-survey/internal/survey/service"
	"facility-survey/internal/survey/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/spf13/cobra"
)

func newServeCmd(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(c *cobra.Command, args []string) error {
			return serve(*cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	resolver := service.NewResolver(repo, repo, store, cfg.PlaceholderImageURL)
	gateway := service.NewLocationGateway(repo)
	sessions := service.NewSessionManager(repo, resolver, gateway, cfg.SessionTTL)
	go sessions.Run(ctx)

	h := handlers.Handlers{
		Health:     handlers.NewHealthHandler(repo),
		Location:   handlers.NewLocationHandler(gateway),
		Catalog:    handlers.NewCatalogHandler(resolver),
		FloorPlans: handlers.NewFloorPlanHandler(service.NewFloorPlanService(repo, store, cfg.MaxUploadBytes), cfg.MaxUploadBytes),
		Photos:     handlers.NewPhotoHandler(service.NewPhotoService(repo, store, cfg.MaxUploadBytes), cfg.MaxUploadBytes),
		Gallery:    handlers.NewGalleryHandler(service.NewGallery(repo, repo, resolver, store)),
		Capture:    handlers.NewCaptureHandler(sessions),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    int(cfg.MaxUploadBytes) + 1<<20,
		AppName:      "Facility Survey",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.CORSOrigin))

	// ============================================================
	// Routes
	// ============================================================

	handlers.Register(app, h)

	if local, ok := store.(*storage.LocalStore); ok && strings.HasPrefix(cfg.StoragePublicURL, "/") {
		app.Use(strings.TrimRight(cfg.StoragePublicURL, "/"), static.New(local.Root()))
		log.Printf("Serving local files from %s at %s", local.Root(), cfg.StoragePublicURL)
	}

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Facility Survey on %s (env: %s, db: %s, storage: %s)",
		addr, cfg.Environment, cfg.DBDriver, cfg.StorageDriver)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		log.Printf("Shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}
