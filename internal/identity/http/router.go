package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lanternhq/lantern/internal/identity/domain"
	"github.com/lanternhq/lantern/internal/identity/revocation"
	"github.com/lanternhq/lantern/internal/identity/service"
	"github.com/lanternhq/lantern/internal/identity/store"
	"github.com/lanternhq/lantern/pkg/httpx"
	"github.com/lanternhq/lantern/pkg/jwtx"
	"github.com/lanternhq/lantern/pkg/slogx"

	_ "github.com/lanternhq/lantern/api/identity" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	verifier     *jwtx.Verifier
	blacklist    *revocation.Registry
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	RegistrationService *service.RegistrationService
	SessionService      *service.SessionService
	ProfileService      *service.ProfileService
	AuditService        *service.AuditService
}

func NewRouter(
	signer *jwtx.Signer,
	verifier *jwtx.Verifier,
	blacklist *revocation.Registry,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		blacklist:    blacklist,
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
	r.registerProfile()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Lantern Identity Service API
//	@version		0.1.0
//	@description	Account registration with email verification, password login issuing
//	@description	EdDSA-signed JWT access tokens with opaque refresh tokens, logout with
//	@description	access-token revocation, and an append-only audit trail.
//
//	@contact.name				LanternHQ
//	@contact.url				https://github.com/lanternhq/lantern
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /register - strict rate limit by IP (account creation abuse)
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(&RegisterHandler{RegistrationService: r.RegistrationService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /verify - moderate limit; tokens are single use anyway
	r.Mux.Handle("GET /v1/auth/verify",
		httpx.Chain(&VerifyHandler{RegistrationService: r.RegistrationService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /resend - strict limit on top of the service's own 5 minute throttle
	r.Mux.Handle("POST /v1/auth/resend",
		httpx.Chain(&ResendHandler{RegistrationService: r.RegistrationService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict rate limit by IP (brute force prevention)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(&LoginHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /refresh - moderate limit; carries no password
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(&RefreshHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /logout - no authn middleware: the handler verifies the access
	// token itself so a revoked-but-valid token can't be replayed through
	// logout for information, and the service stays fail-closed.
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(&LogoutHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{ProfileService: r.ProfileService}

	r.Mux.Handle("GET /v1/profile",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier, r.blacklist),
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("PUT /v1/profile",
		httpx.Chain(http.HandlerFunc(h.HandlePut),
			httpx.AuthnMiddleware(r.verifier, r.blacklist),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{
		ProfileService: r.ProfileService,
		AuditService:   r.AuditService,
	}

	adminOnly := func(handler http.Handler, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.verifier, r.blacklist),
			httpx.RequireAnyRole(domain.RoleAdmin),
			httpx.RateLimitBySubject(limit),
		)
	}

	r.Mux.Handle("GET /v1/admin/accounts",
		adminOnly(http.HandlerFunc(h.HandleListAccounts), httpx.LenientLimit))

	r.Mux.Handle("PUT /v1/admin/accounts/{email}/profile",
		adminOnly(http.HandlerFunc(h.HandleUpdateProfile), httpx.ModerateLimit))

	r.Mux.Handle("GET /v1/admin/audit",
		adminOnly(http.HandlerFunc(h.HandleAuditTrail), httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
