package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/metrics"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/service"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"

	_ "github.com/aussiebroadwan/gatekeeper/api/gatekeeper" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// DefaultRealm is sent in Basic challenges.
const DefaultRealm = "gatekeeper"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	verifier     jwtx.Verifier
	issuer       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	Metrics       *metrics.Metrics
	TokenService  *service.TokenService
	Authenticator *service.Authenticator
	Validator     *service.Validator
	Registry      *service.Registry

	// DirectoryTimeout bounds each directory lookup (default 3s).
	DirectoryTimeout time.Duration
	Realm            string
}

func NewRouter(
	signer jwtx.Signer,
	verifier jwtx.Verifier,
	issuer, buildVersion string,
	st store.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Router {
	if m == nil {
		m = metrics.New()
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		issuer:       issuer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		Metrics:      m,
		logger:       logger,
		Realm:        DefaultRealm,
	}

	// Logging sits outside metrics so the metrics layer sees the pattern
	// the mux matched.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.Metrics.Instrument,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	gate := &Gate{
		Directory:     r.directory(),
		Authenticator: r.Authenticator,
		Validator:     r.Validator,
		Metrics:       r.Metrics,
		Realm:         r.Realm,
	}

	r.registerToken()
	r.registerUsers(gate)
	r.registerRoles(gate)
	r.registerData(gate)
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Gatekeeper Authentication Gate API
//	@version					0.1.0
//	@description				Password grant, bearer token validation with scope checks, and HTTP Basic authentication.
//	@description
//	@description				Access tokens are HS256 JWTs signed with a process-wide secret.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/gatekeeper
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
//
//	@securityDefinitions.basic	BasicAuth
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) directory() *DirectoryScope {
	return &DirectoryScope{Store: r.store, Timeout: r.DirectoryTimeout}
}

func (r *Router) registerToken() {
	h := &TokenHandler{
		Directory:     r.directory(),
		Authenticator: r.Authenticator,
		TokenService:  r.TokenService,
		Metrics:       r.Metrics,
	}

	r.Mux.Handle("POST /v1/token", h)
}

func (r *Router) registerUsers(gate *Gate) {
	r.Mux.Handle("GET /v1/users/me",
		httpx.Chain(http.HandlerFunc(MeHandler), gate.Bearer("profile.read")),
	)

	// Any valid token, no scope requirement
	r.Mux.Handle("GET /v1/users/me/scopes",
		httpx.Chain(http.HandlerFunc(MyScopesHandler), gate.Bearer()),
	)

	r.Mux.Handle("GET /v1/users/me/basic",
		httpx.Chain(http.HandlerFunc(MeBasicHandler), gate.Basic()),
	)
}

func (r *Router) registerRoles(gate *Gate) {
	h := &RolesHandler{Registry: r.Registry}

	r.Mux.Handle("GET /v1/roles", httpx.Chain(h, gate.Bearer("roles.read")))
}

func (r *Router) registerData(gate *Gate) {
	data := http.HandlerFunc(DataHandler)

	r.Mux.Handle("GET /v1/data", httpx.Chain(data, gate.Bearer("data.view")))
	r.Mux.Handle("PUT /v1/data", httpx.Chain(data, gate.Bearer("data.edit")))
	r.Mux.Handle("DELETE /v1/data", httpx.Chain(data, gate.Bearer("data.delete")))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz",
		ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer, r.verifier, r.issuer),
	)
	r.Mux.Handle("GET /metrics", r.Metrics.Handler())
}
