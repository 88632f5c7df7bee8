package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/prescreen/internal/client/notify"
	"github.com/dmitrijs2005/prescreen/internal/client/present"
	"github.com/dmitrijs2005/prescreen/internal/client/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

var funcs = template.FuncMap{
	"amount": present.Amount,
	"ago":    present.Ago,
	"size":   present.Size,
	"years":  present.Years,
	"role":   present.RoleLabel,
	"words":  func(v any) string { return present.Status(fmt.Sprint(v)) },
}

// loadPages parses every page together with the shared layout, keyed by
// file name without extension.
func loadPages() (map[string]*template.Template, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(f, "templates/"), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// page is the data every template receives.
type page struct {
	Title   string
	Session session.Session
	Flashes []notify.Notification
	Data    any
}

// render executes page name and writes it with status. Flashes queued by
// earlier requests come first, then those raised by this one.
func (p *Portal) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	ctx := r.Context()
	t, ok := p.pages[name]
	if !ok {
		p.logger.Error(ctx, "unknown page", "page", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	pg := page{Title: title, Data: data}
	if sc := scopeFrom(ctx); sc != nil {
		pg.Session = sc.store.Snapshot()
		queued, err := p.flashes.Pop(ctx, sc.sid)
		if err != nil {
			p.logger.Error(ctx, "failed to read notifications", "error", err)
		}
		pg.Flashes = append(queued, sc.notifier.Drain()...)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", pg); err != nil {
		p.logger.Error(ctx, "failed to render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirect sends the browser to path with 303 so a form post is not
// resubmitted on reload.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}
