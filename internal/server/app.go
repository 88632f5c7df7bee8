// Package server initializes and runs the web portal: it connects to
// redis, builds the portal's routes, and serves them until a shutdown
// signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/prescreen/internal/logging"
	"github.com/dmitrijs2005/prescreen/internal/server/config"
	"github.com/dmitrijs2005/prescreen/internal/server/web"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config *config.Config
	logger logging.Logger
	rdb    *redis.Client
	portal *web.Portal
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	rdb := redis.NewClient(&redis.Options{Addr: c.RedisAddr})

	portal, err := web.NewPortal(web.Options{
		BaseURL:        c.BaseURL,
		RequestTimeout: c.RequestTimeout,
		SessionTTL:     c.SessionTTL,
		UploadLimit:    c.UploadLimit,
	}, rdb, logger)
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("portal init error: %w", err)
	}

	return &App{config: c, logger: logger, rdb: rdb, portal: portal}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := web.NewServer(app.config.ListenAddr, app.portal.Routes(), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.rdb.Ping(ctx).Err(); err != nil {
		app.logger.Warn(ctx, "redis is not reachable yet", "address", app.config.RedisAddr, "error", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.rdb.Close(); err != nil {
		app.logger.Error(ctx, "failed to close redis client", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
