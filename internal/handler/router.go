package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/petu/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterConfig carries everything the HTTP surface depends on.
type RouterConfig struct {
	Events         *service.EventService
	Auth           *service.AuthService
	Storage        string
	AllowedOrigins []string
}

// NewRouter builds the chi router with the full middleware stack.
func NewRouter(cfg RouterConfig) http.Handler {
	eventHandler := NewEventHandler(cfg.Events)
	authHandler := NewAuthHandler(cfg.Auth)
	system := NewSystemHandler(cfg.Storage, cfg.Events)

	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	// Global middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger)
	r.Use(CORS(cfg.AllowedOrigins))

	r.Get("/", system.Root)
	r.Get("/health", system.Health)

	// Only routes that use the caller's identity read the bearer token.
	authenticate := Authenticate(cfg.Auth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/test", system.APITest)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.With(authenticate, RequireAuth).Get("/me", authHandler.Me)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.ListEvents)
			r.With(authenticate).Post("/create", eventHandler.CreateEvent)
			r.Get("/{id}", eventHandler.GetEvent)
			r.With(authenticate).Post("/{id}/join", eventHandler.JoinEvent)
		})
	})

	return r
}
