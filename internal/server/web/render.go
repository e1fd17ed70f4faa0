package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// page is the data every template receives. Handlers fill in the fields
// their template needs.
type page struct {
	CurrentUser *models.User
	IsAdmin     bool
	Flashes     []string

	Posts   []*models.Post
	Post    *models.Post
	Author  *models.User
	Form    *form
	Heading string
	Action  string
	Status  int
	Message string
}

type renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	// body is stored as author-supplied HTML and rendered as is.
	"unescaped": func(s string) template.HTML { return template.HTML(s) },
}

func newRenderer() (*renderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &renderer{pages: map[string]*template.Template{}}
	for _, name := range names {
		base := name[len("templates/"):]
		if base == "base.html" {
			continue
		}
		t, err := template.New(base).Funcs(funcs).ParseFS(templateFS, "templates/base.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[base] = t
	}
	return r, nil
}

// render executes the named page into a buffer first so a template error
// still produces a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, p *page) {
	t, ok := h.renderer.pages[name]
	if !ok {
		h.serverError(w, r, fmt.Errorf("unknown template %q", name))
		return
	}

	if p == nil {
		p = &page{}
	}
	p.CurrentUser = currentUser(r.Context())
	p.IsAdmin = services.IsAdmin(p.CurrentUser)
	p.Flashes = h.popFlashes(w, r)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", p); err != nil {
		h.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) errorPage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.render(w, r, status, "error.html", &page{Status: status, Message: msg})
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error(r.Context(), "request failed", "error", err, "request_id", requestID(r.Context()))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.errorPage(w, r, http.StatusNotFound, "The page you requested does not exist.")
}
