package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/rolesconsole/internal/directory/service"
	"github.com/aussiebroadwan/rolesconsole/internal/directory/store"
	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/httpx"
	"github.com/aussiebroadwan/rolesconsole/pkg/jwtx"
	"github.com/aussiebroadwan/rolesconsole/pkg/slogx"

	_ "github.com/aussiebroadwan/rolesconsole/api/directory" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	RolesService *service.RolesService
	UsersService *service.UsersService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		RolesService: &service.RolesService{Store: st},
		UsersService: &service.UsersService{Store: st},
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerRoles()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Roles Console Directory API
//	@version		0.1.0
//	@description	Owns the users and roles managed through the admin console.
//	@description
//	@description				Every /v1 endpoint requires an HS256 service token carrying directory:read or directory:write.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/rolesconsole
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8081
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Service token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) read(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(directorysdk.ScopeRead, directorysdk.ScopeWrite),
		httpx.RateLimitBySubject(httpx.ReadLimit),
	)
}

func (r *Router) write(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(directorysdk.ScopeWrite),
		httpx.RateLimitBySubject(httpx.WriteLimit),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UsersService: r.UsersService}

	r.Mux.Handle("GET /v1/users", r.read(h.HandleList))
	r.Mux.Handle("POST /v1/users", r.write(h.HandleCreate))
	r.Mux.Handle("DELETE /v1/users/{id}", r.write(h.HandleDelete))
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService}

	r.Mux.Handle("GET /v1/roles", r.read(h.HandleList))
	r.Mux.Handle("GET /v1/roles/{id}", r.read(h.HandleGet))
	r.Mux.Handle("POST /v1/roles", r.write(h.HandleCreate))
	r.Mux.Handle("PUT /v1/roles/{id}", r.write(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/roles/{id}", r.write(h.HandleDelete))
}

func (r *Router) registerSystem() {
	// Monitoring systems may poll frequently.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.ProbeLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.ProbeLimit),
		),
	)
}
