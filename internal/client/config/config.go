package config

import "time"

// Config holds runtime settings for the portal CLI.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	SessionDB      string
	DownloadDir    string
	LogLevel       string
}

func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8081/api"
	c.RequestTimeout = 30 * time.Second
	c.SessionDB = "portal.db"
	c.DownloadDir = "download"
	c.LogLevel = "warn"
}

// LoadConfig applies defaults, then the JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
