package web

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dmitrijs2005/prescreen/internal/client/client"
	"github.com/dmitrijs2005/prescreen/internal/client/guard"
	"github.com/dmitrijs2005/prescreen/internal/client/repositories/flash"
	"github.com/dmitrijs2005/prescreen/internal/client/services"
	"github.com/dmitrijs2005/prescreen/internal/client/session"
	"github.com/dmitrijs2005/prescreen/internal/common"
	"github.com/dmitrijs2005/prescreen/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Options configure a Portal.
type Options struct {
	BaseURL        string
	RequestTimeout time.Duration
	SessionTTL     time.Duration
	UploadLimit    int64
}

type Portal struct {
	rdb         redis.Cmdable
	flashes     *flash.RedisRepository
	ttl         time.Duration
	uploadLimit int64
	logger      logging.Logger

	auth services.AuthService
	apps services.ApplicationService
	docs services.DocumentService
	msgs services.MessageService

	pages map[string]*template.Template
}

// NewPortal wires the backend gateway and parses the page templates.
// Backend calls carry the bearer token of the browser session that
// issued them.
func NewPortal(opts Options, rdb redis.Cmdable, logger logging.Logger) (*Portal, error) {
	pages, err := loadPages()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	api := client.NewHTTPClient(opts.BaseURL, opts.RequestTimeout, client.TokenFunc(requestToken), logger)

	return &Portal{
		rdb:         rdb,
		flashes:     flash.NewRedisRepository(rdb, opts.SessionTTL),
		ttl:         opts.SessionTTL,
		uploadLimit: opts.UploadLimit,
		logger:      logger.With("module", "web"),
		auth:        services.NewAuthService(api),
		apps:        services.NewApplicationService(api),
		docs:        services.NewDocumentService(api),
		msgs:        services.NewMessageService(api),
		pages:       pages,
	}, nil
}

// Routes builds the portal's router.
func (p *Portal) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(p.accessLog)

	r.Get("/healthz", p.healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(p.withSession)

		r.Get(common.LoginPath, p.loginForm)
		r.Post(common.LoginPath, p.login)
		r.Get("/register", p.registerForm)
		r.Post("/register", p.register)
		r.Get("/forgot-id", p.forgotIDForm)
		r.Post("/forgot-id", p.forgotID)

		r.Group(func(r chi.Router) {
			r.Use(guard.Require(currentSession))

			r.Get("/", http.RedirectHandler(common.DashboardPath, http.StatusSeeOther).ServeHTTP)
			r.Get(common.DashboardPath, p.dashboard)
			r.Post("/logout", p.logout)

			r.Route("/application", func(r chi.Router) {
				r.Get("/new", p.newApplicationForm)
				r.Post("/new", p.createApplication)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", p.application)
					r.Get("/pre-screen", p.preScreen)
					r.Post("/delete", p.deleteApplication)
					r.Post("/comments", p.postComment)
					r.Post("/documents", p.uploadDocument)
					r.Post("/documents/{docID}/status", p.setDocumentStatus)
					r.Get("/documents/{docID}/preview", p.previewDocument)
				})
			})
		})
	})

	return r
}

func (p *Portal) healthz(w http.ResponseWriter, r *http.Request) {
	if err := p.rdb.Ping(r.Context()).Err(); err != nil {
		p.logger.Error(r.Context(), "redis ping failed", "error", err)
		http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func currentSession(r *http.Request) session.Session {
	if sc := scopeFrom(r.Context()); sc != nil {
		return sc.store.Snapshot()
	}
	return session.Session{}
}
