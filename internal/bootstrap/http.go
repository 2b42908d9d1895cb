package bootstrap

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/accredly/console-api/config"
	httpx "github.com/accredly/console-api/internal/http"
)

// HTTPServerConfig contains configuration for the gateway HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Stores   *Stores
	Logger   *slog.Logger
}

// NewHTTPServer builds the gateway server. The caller starts it and owns
// graceful shutdown.
func NewHTTPServer(cfg *HTTPServerConfig) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := httpx.NewRouter(httpx.RouterServices{
		Sessions:      cfg.Services.Sessions,
		Notifications: cfg.Services.Notifications,
		Dashboards:    cfg.Services.Dashboards,
		Prefs:         cfg.Stores.Prefs,
		Logger:        logger,
	})

	return &http.Server{
		Addr:              cfg.Config.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
