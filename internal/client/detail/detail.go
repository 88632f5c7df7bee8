// Package detail drives the application detail screen: the application
// header, its document checklist and the message thread.
//
// Every operation reports its outcome through the notifier; the returned
// error lets a view decide what to do next and is never meant to be shown
// again. Document mutations are always followed by a full re-fetch of the
// document list.
package detail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/client/notify"
	"github.com/dmitrijs2005/prescreen/internal/client/services"
	"github.com/dmitrijs2005/prescreen/internal/common"
	"github.com/dmitrijs2005/prescreen/internal/logging"
	"golang.org/x/sync/errgroup"
)

const (
	loadFailedMessage      = "Failed to load application data"
	deletedMessage         = "Application deleted"
	deleteFailedMessage    = "Failed to delete application"
	sendFailedMessage      = "Failed to send message"
	uploadedMessage        = "Document Uploaded!"
	uploadFailedMessage    = "Upload failed"
	statusFailedMessage    = "Failed to update status"
	previewFailedMessage   = "Could not preview file. It might be missing from the server."
	preScreenFailedMessage = "Failed to run pre-screen"
	summaryFailedMessage   = "Failed to load document summary"

	DeletePrompt = "Are you sure you want to delete this application?"
)

// ErrCancelled is returned by Delete when the user declines to confirm.
var ErrCancelled = errors.New("cancelled")

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Navigator moves the view elsewhere, e.g. back to the dashboard.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// Viewer answers the one capability question the screen needs.
type Viewer interface {
	IsStaff() bool
}

type Deps struct {
	Applications services.ApplicationService
	Documents    services.DocumentService
	Messages     services.MessageService
	Viewer       Viewer
	Notifier     notify.Notifier
	Confirmer    Confirmer
	Navigator    Navigator
	Logger       logging.Logger
}

// State is what the screen renders. Loading stays true until a load
// succeeds; nothing else is meaningful while it is set.
type State struct {
	Loading       bool
	Application   *models.Application
	Documents     []models.Document
	Comments      []models.Comment
	Draft         string
	UploadingType models.DocumentType
}

type Controller struct {
	appID int64
	deps  Deps

	mu    sync.RWMutex
	state State
}

func New(appID int64, deps Deps) *Controller {
	deps.Logger = deps.Logger.With("module", "detail", "application", appID)
	return &Controller{appID: appID, deps: deps, state: State{Loading: true}}
}

func (c *Controller) ApplicationID() int64 { return c.appID }

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.state
	s.Documents = append([]models.Document(nil), c.state.Documents...)
	s.Comments = append([]models.Comment(nil), c.state.Comments...)
	return s
}

func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	c.state.Draft = text
	c.mu.Unlock()
}

// Load fetches the application, its documents and its comments in
// parallel. State is published only when all three succeed.
func (c *Controller) Load(ctx context.Context) error {
	var (
		app      *models.Application
		docs     []models.Document
		comments []models.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		app, err = c.deps.Applications.Get(gctx, c.appID)
		return err
	})
	g.Go(func() error {
		var err error
		docs, err = c.deps.Documents.List(gctx, c.appID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = c.deps.Messages.List(gctx, c.appID)
		return err
	})

	if err := g.Wait(); err != nil {
		c.deps.Logger.Warn(ctx, "load failed", "error", err)
		c.deps.Notifier.Error(ctx, loadFailedMessage)
		return err
	}

	c.mu.Lock()
	c.state.Application = app
	c.state.Documents = docs
	c.state.Comments = comments
	c.state.Loading = false
	c.mu.Unlock()
	return nil
}

// Delete removes the application after confirmation. Only staff may
// delete; for anyone else no request is made.
func (c *Controller) Delete(ctx context.Context) error {
	if !c.deps.Viewer.IsStaff() {
		return common.ErrorStaffOnly
	}
	if !c.deps.Confirmer.Confirm(ctx, DeletePrompt) {
		return ErrCancelled
	}

	if err := c.deps.Applications.Delete(ctx, c.appID); err != nil {
		c.deps.Logger.Warn(ctx, "delete failed", "error", err)
		c.deps.Notifier.Error(ctx, deleteFailedMessage)
		return err
	}

	c.deps.Notifier.Success(ctx, deletedMessage)
	c.deps.Navigator.Navigate(ctx, common.DashboardPath)
	return nil
}

// SendMessage posts text to the thread. Blank text is ignored. The new
// comment is prepended locally; the thread is not re-fetched.
func (c *Controller) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	comment, err := c.deps.Messages.Post(ctx, c.appID, text)
	if err != nil {
		c.deps.Logger.Warn(ctx, "send message failed", "error", err)
		c.deps.Notifier.Error(ctx, sendFailedMessage)
		return err
	}

	c.mu.Lock()
	c.state.Comments = append([]models.Comment{*comment}, c.state.Comments...)
	c.state.Draft = ""
	c.mu.Unlock()
	return nil
}

// Upload attaches a file as docType and refreshes the document list.
func (c *Controller) Upload(ctx context.Context, docType models.DocumentType, filename string, content io.Reader) error {
	c.mu.Lock()
	c.state.UploadingType = docType
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.state.UploadingType = ""
		c.mu.Unlock()
	}()

	if _, err := c.deps.Documents.Upload(ctx, c.appID, docType, filename, content); err != nil {
		c.deps.Logger.Warn(ctx, "upload failed", "docType", docType, "error", err)
		c.deps.Notifier.Error(ctx, uploadFailedMessage)
		return err
	}

	c.deps.Notifier.Success(ctx, uploadedMessage)
	return c.refreshDocuments(ctx, uploadFailedMessage)
}

// Verify sets a review status on a document and refreshes the list.
func (c *Controller) Verify(ctx context.Context, docID int64, status models.DocumentStatus) error {
	if !status.IsReview() {
		return fmt.Errorf("%w: status %q", common.ErrorValidation, status)
	}
	if !c.deps.Viewer.IsStaff() {
		return common.ErrorStaffOnly
	}

	if _, err := c.deps.Documents.SetStatus(ctx, c.appID, docID, status); err != nil {
		c.deps.Logger.Warn(ctx, "status update failed", "document", docID, "error", err)
		c.deps.Notifier.Error(ctx, statusFailedMessage)
		return err
	}

	c.deps.Notifier.Success(ctx, fmt.Sprintf("Document %s", status))
	return c.refreshDocuments(ctx, statusFailedMessage)
}

// refreshDocuments reloads the document list after a mutation. A failure
// is reported with the mutation's own failure message and leaves the
// previous list in place.
func (c *Controller) refreshDocuments(ctx context.Context, failure string) error {
	docs, err := c.deps.Documents.List(ctx, c.appID)
	if err != nil {
		c.deps.Logger.Warn(ctx, "document refetch failed", "error", err)
		c.deps.Notifier.Error(ctx, failure)
		return fmt.Errorf("refresh documents: %w", err)
	}
	c.mu.Lock()
	c.state.Documents = docs
	c.mu.Unlock()
	return nil
}

// Preview downloads a document for display.
func (c *Controller) Preview(ctx context.Context, docID int64) (*models.Blob, error) {
	blob, err := c.deps.Documents.Preview(ctx, c.appID, docID)
	if err != nil {
		c.deps.Logger.Warn(ctx, "preview failed", "document", docID, "error", err)
		c.deps.Notifier.Error(ctx, previewFailedMessage)
		return nil, err
	}
	return blob, nil
}

// RunPreScreen fetches the staff pre-screen report.
func (c *Controller) RunPreScreen(ctx context.Context) (*models.PreScreenReport, error) {
	if !c.deps.Viewer.IsStaff() {
		return nil, common.ErrorStaffOnly
	}
	report, err := c.deps.Applications.PreScreen(ctx, c.appID)
	if err != nil {
		c.deps.Logger.Warn(ctx, "pre-screen failed", "error", err)
		c.deps.Notifier.Error(ctx, preScreenFailedMessage)
		return nil, err
	}
	return report, nil
}

func (c *Controller) Summary(ctx context.Context) (*models.DocSummary, error) {
	sum, err := c.deps.Documents.Summary(ctx, c.appID)
	if err != nil {
		c.deps.Logger.Warn(ctx, "summary failed", "error", err)
		c.deps.Notifier.Error(ctx, summaryFailedMessage)
		return nil, err
	}
	return sum, nil
}
