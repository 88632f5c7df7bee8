package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/prescreen/internal/client/config"
	"github.com/dmitrijs2005/prescreen/internal/client/dashboard"
	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/client/notify"
	"github.com/dmitrijs2005/prescreen/internal/client/session"
	"github.com/dmitrijs2005/prescreen/internal/logging"
)

type fakeStore struct {
	user        *models.User
	restore     session.RestoreResult
	loginOK     bool
	loginID     string
	loginPass   string
	registered  []models.RegisterRequest
	registerID  string
	recovered   *models.ForgotIDResponse
	recoverMail string
	logouts     int
}

func (f *fakeStore) Restore(context.Context) (session.RestoreResult, error) { return f.restore, nil }

func (f *fakeStore) Snapshot() session.Session {
	if f.user == nil {
		return session.Session{}
	}
	u := *f.user
	return session.Session{User: &u, IsAuthenticated: true, Role: u.Role}
}

func (f *fakeStore) IsStaff() bool { return f.user.IsStaff() }

func (f *fakeStore) Login(_ context.Context, id, password string) bool {
	f.loginID, f.loginPass = id, password
	if f.loginOK {
		f.user = &models.User{Username: id, Role: models.RoleApplicant}
	}
	return f.loginOK
}

func (f *fakeStore) Register(_ context.Context, req models.RegisterRequest) (string, bool) {
	f.registered = append(f.registered, req)
	return f.registerID, f.registerID != ""
}

func (f *fakeStore) RecoverID(_ context.Context, email string) (*models.ForgotIDResponse, bool) {
	f.recoverMail = email
	return f.recovered, f.recovered != nil
}

func (f *fakeStore) Logout(context.Context) {
	f.logouts++
	f.user = nil
}

type fakeApps struct {
	list     []models.Application
	app      *models.Application
	created  []models.NewApplication
	deleted  []int64
	report   *models.PreScreenReport
	getCalls int
}

func (f *fakeApps) List(context.Context) ([]models.Application, error) { return f.list, nil }

func (f *fakeApps) Create(_ context.Context, req models.NewApplication) (*models.Application, error) {
	f.created = append(f.created, req)
	return &models.Application{ID: 77, ApplicantName: req.ApplicantName}, nil
}

func (f *fakeApps) Get(context.Context, int64) (*models.Application, error) {
	f.getCalls++
	return f.app, nil
}

func (f *fakeApps) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeApps) PreScreen(context.Context, int64) (*models.PreScreenReport, error) {
	return f.report, nil
}

type fakeDocs struct {
	docs     []models.Document
	uploads  []string
	statuses []models.DocumentStatus
	blob     *models.Blob
	summary  *models.DocSummary
}

func (f *fakeDocs) List(context.Context, int64) ([]models.Document, error) { return f.docs, nil }

func (f *fakeDocs) Upload(_ context.Context, _ int64, t models.DocumentType, name string, r io.Reader) (*models.Document, error) {
	b, _ := io.ReadAll(r)
	f.uploads = append(f.uploads, string(t)+" "+name+" "+string(b))
	doc := models.Document{ID: int64(len(f.docs) + 1), DocType: t, Status: models.StatusUploaded}
	f.docs = append(f.docs, doc)
	return &doc, nil
}

func (f *fakeDocs) SetStatus(_ context.Context, _, _ int64, s models.DocumentStatus) (*models.Document, error) {
	f.statuses = append(f.statuses, s)
	return &models.Document{Status: s}, nil
}

func (f *fakeDocs) Preview(context.Context, int64, int64) (*models.Blob, error) { return f.blob, nil }

func (f *fakeDocs) Summary(context.Context, int64) (*models.DocSummary, error) {
	return f.summary, nil
}

type fakeMsgs struct {
	comments []models.Comment
	posted   []string
}

func (f *fakeMsgs) List(context.Context, int64) ([]models.Comment, error) { return f.comments, nil }

func (f *fakeMsgs) Post(_ context.Context, _ int64, msg string) (*models.Comment, error) {
	f.posted = append(f.posted, msg)
	return &models.Comment{ID: 99, AuthorName: "Asha", AuthorRole: models.RoleApplicant, Message: msg}, nil
}

type testApp struct {
	*App
	store *fakeStore
	apps  *fakeApps
	docs  *fakeDocs
	msgs  *fakeMsgs
	rec   *notify.Recorder
	out   *bytes.Buffer
}

func newTestApp(t *testing.T, user *models.User, input ...string) *testApp {
	t.Helper()

	ta := &testApp{
		store: &fakeStore{user: user},
		apps:  &fakeApps{app: &models.Application{ID: 5, ApplicantName: "Acme Traders"}},
		docs:  &fakeDocs{},
		msgs:  &fakeMsgs{},
		rec:   &notify.Recorder{},
		out:   &bytes.Buffer{},
	}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DownloadDir = t.TempDir()

	ta.App = &App{
		config:    cfg,
		logger:    logging.Discard(),
		store:     ta.store,
		dashboard: dashboard.New(ta.apps, ta.store, ta.rec, logging.Discard()),
		apps:      ta.apps,
		docs:      ta.docs,
		msgs:      ta.msgs,
		notifier:  ta.rec,
		reader:    bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n")),
		out:       ta.out,
	}
	return ta
}

var (
	applicantUser = &models.User{ID: 1, Username: "APPLICANT-1", FullName: "Asha Rao", Role: models.RoleApplicant}
	staffUser     = &models.User{ID: 2, Username: "STAFF-1", FullName: "Ravi Iyer", Role: models.RoleStaff}
)
