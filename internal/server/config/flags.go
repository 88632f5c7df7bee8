package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/prescreen/internal/flagx"
)

func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-l", "-a", "-r", "-s", "-t", "-u", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ListenAddr, "l", cfg.ListenAddr, "listen address")
	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the pre-screen API")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	ttl := fs.Int("s", int(cfg.SessionTTL.Minutes()), "session lifetime (in minutes)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	limit := fs.Int64("u", cfg.UploadLimit>>20, "upload limit (in MiB)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionTTL = time.Duration(*ttl) * time.Minute
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.UploadLimit = *limit << 20
}
