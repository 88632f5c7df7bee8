package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/prescreen/internal/flagx"
	"github.com/dmitrijs2005/prescreen/internal/timex"
)

// JsonConfig is the intermediate shape of the JSON config file. Duration
// fields use timex.Duration so both "1s" and integer nanoseconds parse;
// values are copied into Config afterwards.
type JsonConfig struct {
	ListenAddr     string         `json:"listen_addr"`
	BaseURL        string         `json:"base_url"`
	RedisAddr      string         `json:"redis_addr"`
	SessionTTL     timex.Duration `json:"session_ttl"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	UploadLimit    int64          `json:"upload_limit"`
	LogLevel       string         `json:"log_level"`
}

func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ListenAddr != "" {
		cfg.ListenAddr = jc.ListenAddr
	}
	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RedisAddr != "" {
		cfg.RedisAddr = jc.RedisAddr
	}
	if jc.SessionTTL.Duration != 0 {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.UploadLimit != 0 {
		cfg.UploadLimit = jc.UploadLimit
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
