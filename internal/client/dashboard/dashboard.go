// Package dashboard backs the application list and the new-application form.
package dashboard

import (
	"context"

	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/client/notify"
	"github.com/dmitrijs2005/prescreen/internal/client/services"
	"github.com/dmitrijs2005/prescreen/internal/common"
	"github.com/dmitrijs2005/prescreen/internal/logging"
)

const (
	createdMessage      = "Application started!"
	createFailedMessage = "Failed to create application"
)

type Viewer interface {
	IsStaff() bool
}

type Dashboard struct {
	apps     services.ApplicationService
	viewer   Viewer
	notifier notify.Notifier
	logger   logging.Logger
}

func New(apps services.ApplicationService, viewer Viewer, notifier notify.Notifier, logger logging.Logger) *Dashboard {
	return &Dashboard{apps: apps, viewer: viewer, notifier: notifier, logger: logger.With("module", "dashboard")}
}

// Title is the list heading for the current viewer.
func (d *Dashboard) Title() string {
	if d.viewer.IsStaff() {
		return "Application Queue"
	}
	return "My Applications"
}

// CanCreate reports whether the viewer may start a new application.
func (d *Dashboard) CanCreate() bool {
	return !d.viewer.IsStaff()
}

// Applications lists what the viewer can see: their own applications,
// or the whole queue for staff. A failure is logged and yields an empty
// list.
func (d *Dashboard) Applications(ctx context.Context) []models.Application {
	apps, err := d.apps.List(ctx)
	if err != nil {
		d.logger.Warn(ctx, "failed to load applications", "error", err)
		return nil
	}
	return apps
}

// Create validates the form and submits it. Field errors come back as
// models.FieldErrors without a request being made, so the form can show
// them next to the inputs.
func (d *Dashboard) Create(ctx context.Context, form models.NewApplication) (*models.Application, error) {
	if !d.CanCreate() {
		return nil, common.ErrorStaffOnly
	}
	if err := models.Validate(form); err != nil {
		return nil, err
	}

	app, err := d.apps.Create(ctx, form)
	if err != nil {
		d.logger.Warn(ctx, "create failed", "error", err)
		d.notifier.Error(ctx, createFailedMessage)
		return nil, err
	}

	d.notifier.Success(ctx, createdMessage)
	return app, nil
}
