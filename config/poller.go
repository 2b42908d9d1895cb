package config

import "time"

// PollerConfig contains notification poller configuration.
type PollerConfig struct {
	// Enabled turns the polling loop on.
	Enabled bool `env:"ENABLED" envDefault:"true"`

	// Interval between unread-count polls.
	Interval time.Duration `env:"INTERVAL" envDefault:"30s"`

	// RefreshEvery is the full feed refresh cadence.
	RefreshEvery time.Duration `env:"REFRESH_EVERY" envDefault:"5m"`
}

// Sanitize applies guardrails to poller configuration values.
func (p *PollerConfig) Sanitize() {
	const minInterval = time.Second
	if p.Interval < minInterval {
		p.Interval = minInterval
	}
	if p.RefreshEvery < p.Interval {
		p.RefreshEvery = p.Interval
	}
}
