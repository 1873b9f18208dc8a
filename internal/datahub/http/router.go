package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
	"github.com/pmn-sn/datahub/internal/datahub/service"
	"github.com/pmn-sn/datahub/internal/datahub/store"
	"github.com/pmn-sn/datahub/pkg/httpx"
	"github.com/pmn-sn/datahub/pkg/jwtx"
	"github.com/pmn-sn/datahub/pkg/slogx"

	_ "github.com/pmn-sn/datahub/api/datahub" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     *jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	SearchService  *service.SearchService
	AccountService *service.AccountService
	AdminService   *service.AdminService
}

func NewRouter(
	verifier *jwtx.Verifier,
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
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerDirectory()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			PMN DATAHUB API
//	@version		0.1.0
//	@description	Directory and account management service for the Plateforme des Métiers Nationale.
//	@description
//	@description	Chambre de Métiers accounts search the artisan directory; admin accounts manage
//	@description	the account lifecycle through the dashboard endpoints.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{AccountService: r.AccountService}
	loginHandler := &LoginHandler{AccountService: r.AccountService}
	adminLoginHandler := &LoginHandler{AccountService: r.AccountService, AdminLogin: true}

	// Registration and both logins carry strict per-IP limits against
	// brute force.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/admin/login",
		httpx.Chain(adminLoginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerDirectory() {
	artisansHandler := &ArtisansHandler{SearchService: r.SearchService}
	filtersHandler := &FiltersHandler{SearchService: r.SearchService}
	activityHandler := &ActivityHandler{AccountService: r.AccountService}
	routeCheckHandler := &RouteCheckHandler{Verifier: r.verifier}

	// Directory search requires a session of any role.
	r.Mux.Handle("GET /api/artisans",
		httpx.Chain(artisansHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/filters",
		httpx.Chain(filtersHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// The heartbeat fires on an interval from every open client, so it gets
	// the lenient profile.
	r.Mux.Handle("POST /api/activity",
		httpx.Chain(activityHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// The route gate is consulted on every front-end navigation, with or
	// without a session, so it handles its own token parsing.
	r.Mux.Handle("GET /api/route-check",
		httpx.Chain(routeCheckHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	statsHandler := &AdminStatsHandler{AdminService: r.AdminService}
	usersHandler := &AdminUsersHandler{AdminService: r.AdminService}
	adminsHandler := &AdminAdminsHandler{AdminService: r.AdminService}
	statusHandler := &AdminUserStatusHandler{AdminService: r.AdminService}
	roleHandler := &AdminUserRoleHandler{AdminService: r.AdminService}
	passwordHandler := &AdminUserPasswordHandler{AdminService: r.AdminService, Store: r.store}

	adminGate := func(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(domain.RoleAdmin, domain.RoleSuperAdmin),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("GET /api/admin/stats", adminGate(statsHandler, httpx.LenientLimit))
	r.Mux.Handle("GET /api/admin/users", adminGate(usersHandler, httpx.LenientLimit))
	r.Mux.Handle("GET /api/admin/admins", adminGate(http.HandlerFunc(adminsHandler.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /api/admin/admins", adminGate(http.HandlerFunc(adminsHandler.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("PATCH /api/admin/users/{id}/status", adminGate(statusHandler, httpx.ModerateLimit))
	r.Mux.Handle("PATCH /api/admin/users/{id}/role", adminGate(roleHandler, httpx.ModerateLimit))
	r.Mux.Handle("POST /api/admin/users/{id}/password", adminGate(passwordHandler, httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
