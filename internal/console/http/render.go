package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/rolesconsole/pkg/slogx"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = []string{"dashboard", "users", "roles", "roleform"}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	funcs := template.FuncMap{"join": strings.Join}

	r := &renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templatesFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// page is the data handed to every template.
type page struct {
	Title string
	Error string
	Data  any
}

// render executes into a buffer first so a template error never leaves a
// half written page behind.
func (rd *renderer) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	var buf bytes.Buffer
	if err := rd.pages[name].ExecuteTemplate(&buf, "layout", p); err != nil {
		slogx.FromContext(r.Context()).Error("failed to render page", "page", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
