package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/rolesconsole/internal/console/roleform"
	"github.com/aussiebroadwan/rolesconsole/internal/console/summary"
	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/httpx"
	"github.com/aussiebroadwan/rolesconsole/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Directory is the slice of the directory API the console uses.
// *directorysdk.Client satisfies it.
type Directory interface {
	summary.Directory
	roleform.RoleWriter

	GetRole(ctx context.Context, id string) (*directorysdk.Role, error)
	DeleteRole(ctx context.Context, id string) error
}

// Router serves the console pages and its JSON snapshot.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	dir          Directory
	view         *summary.View
	pages        *renderer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
}

func NewRouter(dir Directory, view *summary.View, buildVersion string, logger *slog.Logger) (*Router, error) {
	pages, err := newRenderer()
	if err != nil {
		return nil, err
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		dir:          dir,
		view:         view,
		pages:        pages,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	return r, nil
}

func (r *Router) ApplyRoutes() {
	r.registerDashboard()
	r.registerDirectoryPages()
	r.registerRoleForm()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func read(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h, httpx.RateLimitByIP(httpx.ReadLimit))
}

func write(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h, httpx.RateLimitByIP(httpx.WriteLimit))
}

func (r *Router) registerDashboard() {
	h := &DashboardHandler{View: r.view, pages: r.pages}

	r.Mux.Handle("GET /{$}", http.RedirectHandler("/dashboard", http.StatusFound))
	r.Mux.Handle("GET /dashboard", read(h.HandlePage))
	r.Mux.Handle("POST /dashboard/refresh", write(h.HandleRefresh))
	r.Mux.Handle("GET /dashboard/cards/{key}", read(h.HandleCard))
	r.Mux.Handle("GET /api/v1/dashboard", read(h.HandleSnapshot))
}

func (r *Router) registerDirectoryPages() {
	h := &ListsHandler{Directory: r.dir, pages: r.pages}

	r.Mux.Handle("GET /users", read(h.HandleUsers))
	r.Mux.Handle("GET /roles", read(h.HandleRoles))
	r.Mux.Handle("POST /roles/{id}/delete", write(h.HandleDeleteRole))
}

func (r *Router) registerRoleForm() {
	h := &RoleFormHandler{Directory: r.dir, pages: r.pages}

	r.Mux.Handle("GET /roles/new", read(h.HandleNew))
	r.Mux.Handle("GET /roles/{id}/edit", read(h.HandleEdit))
	r.Mux.Handle("POST /roles/form", write(h.HandleSubmit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.ProbeLimit),
		),
	)
	r.Mux.Handle("GET /metrics",
		httpx.Chain(promhttp.Handler(),
			httpx.RateLimitByIP(httpx.ProbeLimit),
		),
	)
}

// LivezHandler reports that the console process is up. It does not check
// the directory; the dashboard surfaces that.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, directorysdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
