package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-service/internal/platform/config"
	"github.com/jsamuelsen/quote-service/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	HealthHandler *handlers.HealthHandler
	QuoteHandler  *handlers.QuoteHandler
	NodeHandler   *handlers.NodeHandler

	// Timeout is the deadline placed on /api requests. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips health endpoints)
//  6. Timeout - request deadline on /api only
//
// Route groups:
//   - /-/ (internal): probes, build info and Prometheus metrics
//   - /api/: quotes, dbstatus and nodeinfo
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.AppConfig.Name)...)
	engine.Use(middleware.Logging(cfg.Logger))

	engine.NoRoute(NoRoute)
	engine.NoMethod(NoMethod)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group("/api")
	if cfg.Timeout > 0 {
		api.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	setupAPIRoutes(api, cfg)
}

// setupAPIRoutes registers the quote and node endpoints.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(rg)
	}

	if cfg.NodeHandler != nil {
		cfg.NodeHandler.RegisterNodeRoutes(rg)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with the default timeout.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	healthHandler *handlers.HealthHandler,
	quoteHandler *handlers.QuoteHandler,
	nodeHandler *handlers.NodeHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AppConfig:     appCfg,
		HealthHandler: healthHandler,
		QuoteHandler:  quoteHandler,
		NodeHandler:   nodeHandler,
		Timeout:       DefaultRequestTimeout,
	}
}
