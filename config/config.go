package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Remote accreditation API configuration
//   - http.go: Gateway HTTP server configuration
//   - storage.go: Durable storage (Redis) configuration
//   - poller.go: Notification poller configuration
type AppConfig struct {
	// IsDev controls development mode behavior.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Remote accreditation API configuration.
	API APIConfig `envPrefix:"API_"`

	// Gateway HTTP server configuration.
	HTTP HTTPConfig

	// Durable storage configuration.
	Storage StorageConfig

	// Notification poller configuration.
	Poller PollerConfig `envPrefix:"POLLER_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Poller.Sanitize()
}
