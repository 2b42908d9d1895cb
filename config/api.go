package config

import "strings"

// APIConfig contains configuration for the remote accreditation API.
type APIConfig struct {
	// BaseURL is the API root, e.g. "https://api.accreditation.example".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	// A trailing slash would double up when paths are appended.
	a.BaseURL = strings.TrimRight(a.BaseURL, "/")
}
