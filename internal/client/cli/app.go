package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/prescreen/internal/client/client"
	"github.com/dmitrijs2005/prescreen/internal/client/config"
	"github.com/dmitrijs2005/prescreen/internal/client/dashboard"
	"github.com/dmitrijs2005/prescreen/internal/client/migrations"
	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/client/notify"
	"github.com/dmitrijs2005/prescreen/internal/client/present"
	sessionrepo "github.com/dmitrijs2005/prescreen/internal/client/repositories/session"
	"github.com/dmitrijs2005/prescreen/internal/client/services"
	"github.com/dmitrijs2005/prescreen/internal/client/session"
	"github.com/dmitrijs2005/prescreen/internal/logging"
)

// sessionStore is the part of session.Store the CLI drives.
type sessionStore interface {
	Restore(ctx context.Context) (session.RestoreResult, error)
	Snapshot() session.Session
	IsStaff() bool
	Login(ctx context.Context, id, password string) bool
	Register(ctx context.Context, req models.RegisterRequest) (string, bool)
	RecoverID(ctx context.Context, email string) (*models.ForgotIDResponse, bool)
	Logout(ctx context.Context)
}

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	store     sessionStore
	dashboard *dashboard.Dashboard
	apps      services.ApplicationService
	docs      services.DocumentService
	msgs      services.MessageService
	notifier  notify.Notifier
	reader    *bufio.Reader
	out       io.Writer
}

// NewApp opens the session database and wires the gateway, services and
// session store.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := migrations.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	var store *session.Store
	tokens := client.TokenFunc(func(ctx context.Context) string {
		return store.AccessToken(ctx)
	})
	api := client.NewHTTPClient(c.BaseURL, c.RequestTimeout, tokens, logger)

	notifier := notify.NewWriter(os.Stdout)
	store = session.NewStore(sessionrepo.NewSQLiteRepository(db), services.NewAuthService(api), notifier, logger)
	apps := services.NewApplicationService(api)

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		store:     store,
		dashboard: dashboard.New(apps, store, notifier, logger),
		apps:      apps,
		docs:      services.NewDocumentService(api),
		msgs:      services.NewMessageService(api),
		notifier:  notifier,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

// Run restores the previous session and blocks in the REPL until the
// user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	res, err := a.store.Restore(ctx)
	if err != nil {
		a.logger.Warn(ctx, "restore session", "error", err)
	}
	switch res {
	case session.RestoreExpired:
		printlnFn("Your session has expired. Please login again.")
	case session.RestoreAuthenticated:
		printlnFn(fmt.Sprintf("Signed in as %s", a.store.Snapshot().User.Username))
		_ = a.List(ctx)
	}

	printlnFn("Welcome to the SME Pre-Screen portal (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) close(ctx context.Context) {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(ctx, "close session database", "error", err)
	}
}

func (a *App) snapshot() session.Session {
	return a.store.Snapshot()
}

// status is shown in the prompt: "(APPLICANT-3 Applicant)" or empty.
func (a *App) status() string {
	s := a.store.Snapshot()
	if s.User == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", s.User.Username, present.RoleLabel(s.Role))
}
