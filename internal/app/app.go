package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"yieldboard/internal/config"
	"yieldboard/internal/dataprocessing"
	apierrors "yieldboard/internal/errors"
	"yieldboard/internal/files"
	"yieldboard/internal/infrastructure"
	customMiddleware "yieldboard/internal/middleware"
	"yieldboard/internal/services"
	handlers "yieldboard/internal/transport/http"
	"yieldboard/pkg/contracts"
)

// AppName is the human readable application name used in logs.
const AppName = "Yieldboard - Savings Track Yields Dashboard"

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	Resolver      *files.SourceResolver
	Pipeline      *dataprocessing.Pipeline
	DataService   *services.DataService
	HealthService *services.HealthService
	ErrorHandler  *apierrors.ErrorHandler

	startTime time.Time
}

// NewApplication wires every component from cfg. A nil logger initializes
// the global logger from cfg.Logging.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if logger == nil {
		var err error
		logger, err = infrastructure.InitializeLogger(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	app := &Application{
		Config:    cfg,
		Logger:    logger,
		startTime: time.Now(),
	}

	if err := app.initializeTelemetry(); err != nil {
		return nil, err
	}
	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

func (a *Application) initializeTelemetry() error {
	providers, err := infrastructure.InitializeOTel(
		infrastructure.OTelConfigFromTelemetry(a.Config.Telemetry), a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	a.OTelProviders = providers

	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create business metrics: %w", err)
	}
	a.Metrics = metrics

	if err := infrastructure.RegisterSystemMetrics(providers.Meter, a.startTime); err != nil {
		return fmt.Errorf("failed to register system metrics: %w", err)
	}
	return nil
}

func (a *Application) initializeServices() error {
	src := a.Config.Source

	resolver, err := files.NewSourceResolver(src.DataDir, src.Mode, src.FileName, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create source resolver: %w", err)
	}
	a.Resolver = resolver

	a.Pipeline = dataprocessing.NewPipeline(a.Logger,
		dataprocessing.WithMetrics(a.Metrics),
		dataprocessing.WithTracer(a.OTelProviders.Tracer),
	)

	a.DataService = services.NewDataService(resolver, a.Pipeline, a.Logger)
	a.HealthService = services.NewHealthService(contracts.Version, src, a.Config.Paths, resolver, a.Logger)
	a.ErrorHandler = apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Level == "debug")
	return nil
}

// setupRouter configures the HTTP router. NoCache sits at the top so that
// every response, errors and /metrics included, carries it.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.NoCache)
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(apierrors.RecoveryMiddleware(a.ErrorHandler))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			ExposedHeaders: []string{customMiddleware.RequestIDHeader},
			Logger:         a.Logger,
		}))
	}

	if rl := a.Config.Security.RateLimit; rl.Enabled {
		r.Use(customMiddleware.NewRateLimiter(rl.RPS, rl.Burst, a.ErrorHandler).Handler)
	}

	r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout))

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	frontend := handlers.NewFrontendHandler(a.Config.Paths.FrontendFile, a.Logger, a.ErrorHandler)
	r.Method(http.MethodGet, "/", frontend)
	r.Method(http.MethodHead, "/", frontend)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		a.setupAPIRoutes(r)
	})

	var promHandler http.Handler
	if a.OTelProviders != nil {
		promHandler = a.OTelProviders.PrometheusHTTP
	}
	r.Method(http.MethodGet, "/metrics", handlers.NewMetricsHandler(promHandler, a.ErrorHandler))

	a.Router = r
}

func (a *Application) setupAPIRoutes(r chi.Router) {
	dataHandler := handlers.NewDataHandler(a.DataService, a.Logger, a.ErrorHandler)
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)

	r.Get("/data", dataHandler.GetData)

	r.Get("/health", healthHandler.HealthCheck)
	r.Get("/health/live", healthHandler.LivenessCheck)
	r.Get("/health/ready", healthHandler.ReadinessCheck)
	r.Get("/version", healthHandler.Version)
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	infrastructure.CloseLogFile()

	return errors.Join(errs...)
}

// Run serves HTTP until ctx is cancelled, SIGINT or SIGTERM arrives, or the
// listener fails, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", contracts.GetFullVersionString()),
		slog.String("address", a.Server.Addr),
		slog.String("level", a.Config.Logging.Level))
	a.Config.LogPathResolution(a.Logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.Background())
	})

	return g.Wait()
}
