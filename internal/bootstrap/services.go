package bootstrap

import (
	"log/slog"

	"github.com/accredly/console-api/config"
	"github.com/accredly/console-api/internal/adapters/restapi"
	"github.com/accredly/console-api/internal/service"
)

// ServiceContainer bundles the application services built at startup.
// Everything is constructed once here and passed to consumers; nothing is
// discovered via ambient lookup.
type ServiceContainer struct {
	API           *restapi.Client
	Sessions      *service.SessionManager
	Notifications *service.NotificationManager
	Dashboards    *service.DashboardService
}

// BuildServices wires the remote API client and the state managers.
func BuildServices(cfg config.AppConfig, stores *Stores, logger *slog.Logger) ServiceContainer {
	client := restapi.NewClient(restapi.Options{
		BaseURL: cfg.API.BaseURL,
		Tokens:  stores.Tokens,
	})

	sessions := service.NewSessionManager(service.SessionManagerOptions{
		API:    client,
		Tokens: stores.Tokens,
		Prefs:  stores.Prefs,
		Logger: logger,
	})

	notifications := service.NewNotificationManager(service.NotificationManagerOptions{
		API:    client,
		Logger: logger,
	})

	dashboards := service.NewDashboardService(service.DashboardServiceOptions{
		API:    client,
		Logger: logger,
	})

	return ServiceContainer{
		API:           client,
		Sessions:      sessions,
		Notifications: notifications,
		Dashboards:    dashboards,
	}
}
