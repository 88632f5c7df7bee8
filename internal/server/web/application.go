package web

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/prescreen/internal/client/checklist"
	"github.com/dmitrijs2005/prescreen/internal/client/detail"
	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/common"
	"github.com/go-chi/chi/v5"
)

const (
	chooseFileMessage   = "Choose a file to upload"
	unknownTypeMessage  = "Unknown document type"
	fileTooLargeMessage = "File is too large"
)

// inlineTypes are the only blob types rendered in the browser. Anything
// else is downloaded so uploaded markup never runs on the portal origin.
var inlineTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
}

type applicationView struct {
	ID          int64
	Loading     bool
	Staff       bool
	Application *models.Application
	Sections    []checklist.Section
	Progress    checklist.Progress
	Comments    []commentView
}

type commentView struct {
	models.Comment
	Mine bool
}

type preScreenView struct {
	ID      int64
	Report  *models.PreScreenReport
	Summary *models.DocSummary
}

// confirmation answers the delete prompt with what the form posted.
type confirmation bool

func (c confirmation) Confirm(context.Context, string) bool { return bool(c) }

// navigation records where the controller asked to go, so the handler
// can redirect there once it returns.
type navigation struct {
	path string
}

func (n *navigation) Navigate(_ context.Context, path string) { n.path = path }

func applicationPath(id int64) string {
	return fmt.Sprintf("/application/%d", id)
}

func urlID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	return id, err == nil && id > 0
}

func (p *Portal) controller(r *http.Request, id int64, confirm detail.Confirmer, nav detail.Navigator) *detail.Controller {
	sc := scopeFrom(r.Context())
	return detail.New(id, detail.Deps{
		Applications: p.apps,
		Documents:    p.docs,
		Messages:     p.msgs,
		Viewer:       sc.store,
		Notifier:     sc.notifier,
		Confirmer:    confirm,
		Navigator:    nav,
		Logger:       p.logger,
	})
}

// target resolves {id} and builds a controller for it. On a bad id it
// answers 404 and returns nil.
func (p *Portal) target(w http.ResponseWriter, r *http.Request, confirm detail.Confirmer, nav detail.Navigator) *detail.Controller {
	id, ok := urlID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return nil
	}
	return p.controller(r, id, confirm, nav)
}

func (p *Portal) application(w http.ResponseWriter, r *http.Request) {
	ctl := p.target(w, r, confirmation(false), &navigation{})
	if ctl == nil {
		return
	}
	staff := scopeFrom(r.Context()).store.IsStaff()
	view := applicationView{ID: ctl.ApplicationID(), Staff: staff, Loading: true}

	if err := ctl.Load(r.Context()); err != nil {
		p.render(w, r, http.StatusOK, "application", "Application", view)
		return
	}

	st := ctl.State()
	view.Loading = st.Loading
	view.Application = st.Application
	view.Sections = checklist.Sections(st.Documents, staff)
	view.Progress = checklist.Summarize(view.Sections)
	view.Comments = threadOf(st.Comments, staff)

	p.render(w, r, http.StatusOK, "application", st.Application.ApplicantName, view)
}

// threadOf orders comments oldest first for display.
func threadOf(comments []models.Comment, staff bool) []commentView {
	out := make([]commentView, 0, len(comments))
	for i := len(comments) - 1; i >= 0; i-- {
		out = append(out, commentView{Comment: comments[i], Mine: comments[i].IsMine(staff)})
	}
	return out
}

func (p *Portal) deleteApplication(w http.ResponseWriter, r *http.Request) {
	nav := &navigation{}
	ctl := p.target(w, r, confirmation(r.PostFormValue("confirm") == "yes"), nav)
	if ctl == nil {
		return
	}

	err := ctl.Delete(r.Context())
	switch {
	case errors.Is(err, common.ErrorStaffOnly):
		http.Error(w, "Only bank staff can delete applications", http.StatusForbidden)
	case nav.path != "":
		redirect(w, r, nav.path)
	default:
		redirect(w, r, applicationPath(ctl.ApplicationID()))
	}
}

func (p *Portal) postComment(w http.ResponseWriter, r *http.Request) {
	ctl := p.target(w, r, confirmation(false), &navigation{})
	if ctl == nil {
		return
	}
	_ = ctl.SendMessage(r.Context(), r.PostFormValue("message"))
	redirect(w, r, applicationPath(ctl.ApplicationID())+"#chat")
}

func (p *Portal) uploadDocument(w http.ResponseWriter, r *http.Request) {
	ctl := p.target(w, r, confirmation(false), &navigation{})
	if ctl == nil {
		return
	}
	sc := scopeFrom(r.Context())
	back := applicationPath(ctl.ApplicationID())

	if sc.store.IsStaff() {
		http.Error(w, "Only applicants can upload documents", http.StatusForbidden)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, p.uploadLimit)
	if err := r.ParseMultipartForm(p.uploadLimit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sc.notifier.Error(r.Context(), fileTooLargeMessage)
		} else {
			sc.notifier.Error(r.Context(), chooseFileMessage)
		}
		redirect(w, r, back)
		return
	}

	docType := models.DocumentType(r.FormValue("docType"))
	if _, ok := models.LookupDocumentType(docType); !ok {
		sc.notifier.Error(r.Context(), unknownTypeMessage)
		redirect(w, r, back)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		sc.notifier.Error(r.Context(), chooseFileMessage)
		redirect(w, r, back)
		return
	}
	defer file.Close()

	_ = ctl.Upload(r.Context(), docType, header.Filename, file)
	redirect(w, r, back)
}

func (p *Portal) setDocumentStatus(w http.ResponseWriter, r *http.Request) {
	ctl := p.target(w, r, confirmation(false), &navigation{})
	if ctl == nil {
		return
	}
	docID, ok := urlID(r, "docID")
	if !ok {
		http.NotFound(w, r)
		return
	}

	err := ctl.Verify(r.Context(), docID, models.DocumentStatus(r.PostFormValue("status")))
	switch {
	case errors.Is(err, common.ErrorValidation):
		http.Error(w, "Status must be VERIFIED or REJECTED", http.StatusBadRequest)
	case errors.Is(err, common.ErrorStaffOnly):
		http.Error(w, "Only bank staff can review documents", http.StatusForbidden)
	default:
		redirect(w, r, applicationPath(ctl.ApplicationID()))
	}
}

func (p *Portal) previewDocument(w http.ResponseWriter, r *http.Request) {
	ctl := p.target(w, r, confirmation(false), &navigation{})
	if ctl == nil {
		return
	}
	docID, ok := urlID(r, "docID")
	if !ok {
		http.NotFound(w, r)
		return
	}

	blob, err := ctl.Preview(r.Context(), docID)
	if err != nil {
		redirect(w, r, applicationPath(ctl.ApplicationID()))
		return
	}

	contentType, disposition := previewHeaders(blob.ContentType)
	params := map[string]string{}
	if blob.Filename != "" {
		params["filename"] = blob.Filename
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, params))
	w.Header().Set("Content-Security-Policy", "sandbox")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write(blob.Data)
}

func previewHeaders(contentType string) (string, string) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err == nil && inlineTypes[mt] {
		return mt, "inline"
	}
	return "application/octet-stream", "attachment"
}

func (p *Portal) preScreen(w http.ResponseWriter, r *http.Request) {
	ctl := p.target(w, r, confirmation(false), &navigation{})
	if ctl == nil {
		return
	}

	report, err := ctl.RunPreScreen(r.Context())
	switch {
	case errors.Is(err, common.ErrorStaffOnly):
		http.Error(w, "Only bank staff can run the pre-screen", http.StatusForbidden)
		return
	case err != nil:
		redirect(w, r, applicationPath(ctl.ApplicationID()))
		return
	}

	view := preScreenView{ID: ctl.ApplicationID(), Report: report}
	// a failed summary still renders the report
	view.Summary, _ = ctl.Summary(r.Context())

	p.render(w, r, http.StatusOK, "prescreen", fmt.Sprintf("Pre-screen #%d", view.ID), view)
}
