package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Pelmenoff/m2-hw12/internal/api/rest/handler"
	"github.com/Pelmenoff/m2-hw12/internal/api/rest/middleware"
	"github.com/Pelmenoff/m2-hw12/internal/api/rest/response"
	"github.com/Pelmenoff/m2-hw12/internal/logger"
	"github.com/Pelmenoff/m2-hw12/internal/model"
)

// AuthService is the auth surface the router needs: the handler
// operations plus token authentication for protected routes.
type AuthService interface {
	handler.AuthService
	middleware.Authenticator
}

// RateLimit configures throttling of the register and login endpoints.
type RateLimit struct {
	RPS   float64
	Burst int
}

// Options tunes the middleware stack.
type Options struct {
	RateLimit RateLimit
	// TrustProxyHeaders takes the client address from X-Forwarded-For,
	// X-Real-IP or True-Client-IP. Enable it only behind a proxy that
	// overwrites those headers, otherwise clients pick their own rate limit key.
	TrustProxyHeaders bool
}

// Router wires HTTP handlers and middleware.
type Router struct {
	authService    AuthService
	contactService handler.ContactService
	pinger         model.Pinger
	contextManager model.ContextManager
	opts           Options
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService AuthService,
	contactService handler.ContactService,
	pinger model.Pinger,
	contextManager model.ContextManager,
	opts Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		contactService: contactService,
		pinger:         pinger,
		contextManager: contextManager,
		opts:           opts,
		logger:         logger,
	}
}

// Register builds the HTTP handler with every route and middleware attached.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	if r.opts.TrustProxyHeaders {
		mux.Use(chimiddleware.RealIP)
	}
	mux.Use(logging.Handle)
	mux.Use(chimiddleware.Recoverer)

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Not Found")
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	mux.Get("/health", handler.NewHealth(r.pinger, r.logger).Check)
	r.registerAuthRoutes(mux)
	r.registerContactRoutes(mux)

	return mux
}

func (r *Router) registerAuthRoutes(mux chi.Router) {
	authHandler := handler.NewAuth(r.authService, r.logger)
	limiter := middleware.NewRateLimit(r.opts.RateLimit.RPS, r.opts.RateLimit.Burst, r.logger)

	mux.Group(func(g chi.Router) {
		g.Use(limiter.Handle)
		g.Post("/register/", authHandler.Register)
		g.Post("/token/", authHandler.Login)
	})
	mux.Post("/token/refresh/", authHandler.Refresh)
}

func (r *Router) registerContactRoutes(mux chi.Router) {
	contactHandler := handler.NewContact(r.contactService, r.contextManager, r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)

	mux.Route("/contacts", func(c chi.Router) {
		c.Use(authenticate.Handle)
		c.Post("/", contactHandler.Create)
		c.Get("/", contactHandler.List)
		c.Get("/search/", contactHandler.Search)
		c.Get("/upcoming_birthdays/", contactHandler.UpcomingBirthdays)
		c.Get("/{id}", contactHandler.Get)
		c.Put("/{id}", contactHandler.Update)
		c.Delete("/{id}", contactHandler.Delete)
	})
}
