// Package config handles configuration for the web portal,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the web portal.
//
// Fields:
//   - ListenAddr: bind address for the portal's HTTP listener.
//   - BaseURL: root of the pre-screen REST API the portal talks to.
//   - RedisAddr: redis instance that keeps browser sessions and flashes.
//   - SessionTTL: idle lifetime of a browser session.
//   - RequestTimeout: deadline for a single backend call.
//   - UploadLimit: largest multipart body accepted for a document upload.
type Config struct {
	ListenAddr     string
	BaseURL        string
	RedisAddr      string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
	UploadLimit    int64
	LogLevel       string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.BaseURL = "http://localhost:8081/api"
	c.RedisAddr = "localhost:6379"
	c.SessionTTL = 12 * time.Hour
	c.RequestTimeout = 30 * time.Second
	c.UploadLimit = 20 << 20
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
