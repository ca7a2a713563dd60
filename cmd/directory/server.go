package main

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/employee-directory/internal/api/http"
	"github.com/spec-kit/employee-directory/internal/api/http/handlers"
	"github.com/spec-kit/employee-directory/internal/config"
	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/events"
	"github.com/spec-kit/employee-directory/internal/i18n"
	"github.com/spec-kit/employee-directory/internal/observability"
	"github.com/spec-kit/employee-directory/internal/repository"
	"github.com/spec-kit/employee-directory/internal/service"
	"github.com/spec-kit/employee-directory/internal/session"
	"github.com/spec-kit/employee-directory/internal/validation"
	"github.com/spec-kit/employee-directory/internal/view"
	"github.com/spec-kit/employee-directory/internal/worker"
)

type server struct {
	app      *fiber.App
	registry *session.Registry
}

// newServer loads the seed and catalog and assembles the HTTP application.
func newServer(cfg *config.Config, logger *zap.Logger) (*server, error) {
	repo := repository.NewSeedRepository(cfg.Directory.SeedPath, cfg.Directory.CatalogPath)
	seed, err := repo.Employees()
	if err != nil {
		return nil, err
	}
	catalog, err := repo.Catalog()
	if err != nil {
		return nil, err
	}
	logger.Info("directory loaded",
		zap.Int("employees", len(seed)),
		zap.Int("departments", len(catalog.Departments)),
		zap.Int("positions", len(catalog.Positions)))
	if cfg.Directory.EnforceCatalog {
		if err := checkSeedCatalog(seed, catalog); err != nil {
			return nil, err
		}
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	bundle, err := i18n.NewBundle(cfg.I18n.DefaultLanguage, cfg.I18n.SupportedLanguages)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, cfg.Audit, metrics))

	registry := session.NewRegistry(session.Deps{
		Seed:           seed,
		Catalog:        catalog,
		EnforceCatalog: cfg.Directory.EnforceCatalog,
		Bundle:         bundle,
		Renderer:       renderer,
		Validator:      validation.New(),
		SubmitDelay:    cfg.Directory.SubmitDelay(),
		ItemsPerPage:   cfg.Directory.ItemsPerPage,
		Events:         dispatcher,
		Recorder:       metrics,
		Logger:         logger,
	}, cfg.Session.IdleTTL(), session.WithGauge(metrics.SetSessions))

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:   logger,
		Metrics:  metrics,
		Timeout:  cfg.App.RequestTimeout(),
		Renderer: renderer,
		Bundle:   bundle,
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.ReadinessCheck{
			"seed": func(context.Context) error {
				_, err := repo.Employees()
				return err
			},
			"catalog": func(context.Context) error {
				_, err := repo.Catalog()
				return err
			},
		}),
		Employees: handlers.NewEmployeesHandler(renderer, nil, logger),
		Form:      handlers.NewFormHandler(renderer, logger),
		Pages:     handlers.NewPagesHandler(renderer, bundle.Supported()),
		Sessions:  session.NewMiddleware(registry, cfg.Session),
		Metrics:   metrics,
	})

	return &server{app: app, registry: registry}, nil
}

// checkSeedCatalog rejects seed records whose department or position the
// catalog does not offer; such records could never be saved again.
func checkSeedCatalog(seed []domain.Employee, catalog domain.Catalog) error {
	for _, e := range seed {
		if ferr := validation.ValidateCatalog(catalog, e); ferr != nil {
			return fmt.Errorf("seed employee %d: %s: %w", e.ID, ferr.Field, ferr)
		}
	}
	return nil
}
