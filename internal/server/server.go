// Package server assembles the dose ordering API from configuration.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/zatekoja/doseordering/internal/adapters/export"
	"github.com/zatekoja/doseordering/internal/adapters/memory"
	"github.com/zatekoja/doseordering/internal/adapters/seed"
	"github.com/zatekoja/doseordering/internal/api/handlers"
	"github.com/zatekoja/doseordering/internal/api/routes"
	"github.com/zatekoja/doseordering/internal/application/compliance"
	"github.com/zatekoja/doseordering/internal/application/services"
	"github.com/zatekoja/doseordering/internal/infrastructure/observability"
	"github.com/zatekoja/doseordering/pkg/config"
)

// App holds the wired services behind the HTTP API
type App struct {
	Repositories seed.Repositories

	Orders       *services.OrderService
	Appointments *services.AppointmentService
	Vendors      *services.VendorService
	Insurances   *services.InsuranceService
	DoseCredits  *services.DoseCreditService
	Compliance   *compliance.Services

	Metrics *observability.Metrics
}

// New builds in-memory stores, loads the seed catalog into them and wires
// the services
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	metrics, err := observability.InitMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	repos := seed.Repositories{
		Appointments: memory.NewAppointmentStore(),
		Vendors:      memory.NewVendorStore(),
		Insurances:   memory.NewInsuranceStore(),
		DoseCredits:  memory.NewDoseCreditStore(),
		Compliance:   memory.NewComplianceStores(),
	}

	catalog, err := seed.LoadFile(cfg.App.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed catalog: %w", err)
	}
	if err := catalog.Apply(ctx, repos); err != nil {
		return nil, fmt.Errorf("failed to apply seed catalog: %w", err)
	}

	observability.GetLogger().Info().
		Str("seed_file", cfg.App.SeedFile).
		Int("appointments", len(catalog.Appointments)).
		Int("vendors", len(catalog.Vendors)).
		Int("insurances", len(catalog.Insurances)).
		Int("dose_credits", len(catalog.DoseCredits)).
		Int("regulatory_records", catalog.Regulatory.Count()).
		Msg("seed catalog loaded")

	exporter := export.NewExporter()

	return &App{
		Repositories: repos,
		Orders:       services.NewOrderService(repos.Appointments, repos.Vendors, repos.Insurances, exporter, metrics),
		Appointments: services.NewAppointmentService(repos.Appointments, exporter, metrics),
		Vendors:      services.NewVendorService(repos.Vendors, exporter, metrics),
		Insurances:   services.NewInsuranceService(repos.Insurances),
		DoseCredits:  services.NewDoseCreditService(repos.DoseCredits, exporter, metrics),
		Compliance:   compliance.NewServices(repos.Compliance, exporter, metrics),
		Metrics:      metrics,
	}, nil
}

// Handler returns the routed HTTP handler with middleware applied
func (a *App) Handler() http.Handler {
	router := routes.NewRouter(
		handlers.NewOrderHandler(a.Orders),
		handlers.NewAppointmentHandler(a.Appointments),
		handlers.NewVendorHandler(a.Vendors),
		handlers.NewInsuranceHandler(a.Insurances),
		handlers.NewDoseCreditHandler(a.DoseCredits),
		RegisterHandlers(a.Compliance),
		a.Metrics,
	)
	return router.SetupRoutes()
}

// RegisterHandlers builds one handler per compliance register
func RegisterHandlers(c *compliance.Services) []handlers.RegisterEndpoints {
	return []handlers.RegisterEndpoints{
		registerHandler(c.ActionItems),
		registerHandler(c.DailySurveys),
		registerHandler(c.WeeklySurveys),
		registerHandler(c.Dosimeters),
		registerHandler(c.InstrumentQC),
		registerHandler(c.PatientDoses),
		registerHandler(c.SealedSources),
		registerHandler(c.TracerMoves),
		registerHandler(c.WasteBins),
	}
}

func registerHandler[T any](s *compliance.Service[T]) handlers.RegisterEndpoints {
	return handlers.NewRegisterHandler[T](s.Register().Path, s)
}

// Run serves the API until ctx is canceled, then shuts down gracefully
func Run(ctx context.Context, cfg *config.Config) error {
	logger := observability.GetLogger()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}
