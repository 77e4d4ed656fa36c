// Package config handles configuration for the display client and the admin
// console, including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the signage clients.
//
// Fields:
//   - ServerBaseURL: base URL of the signage API server.
//   - ScreenID: the screen this display client renders (display client only).
//   - RefreshInterval: how often the display re-resolves its screen's asset.
//     This periodic pull is the only cross-device propagation mechanism —
//     there is no push channel.
//   - ClockInterval: how often the time-of-day display updates.
//   - RequestTimeout: upper bound on any single API call.
//   - DataDir: directory for the per-device cache database.
type Config struct {
	ServerBaseURL   string
	ScreenID        string
	RefreshInterval time.Duration
	ClockInterval   time.Duration
	RequestTimeout  time.Duration
	DataDir         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.ScreenID = "1"
	c.RefreshInterval = 10 * time.Minute
	c.ClockInterval = 1 * time.Minute
	c.RequestTimeout = 10 * time.Second
	c.DataDir = "data"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
