package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/countries-api/internal/api/http/handler"
	"github.com/dtroode/countries-api/internal/api/http/middleware"
	"github.com/dtroode/countries-api/internal/logger"
	"github.com/dtroode/countries-api/internal/model"
)

// Router wires handlers and middleware into the HTTP API.
type Router struct {
	authService    handler.AuthService
	countryService handler.CountryService
	newGuard       middleware.NewGuardFunc
	codec          model.TokenCodec
	userStore      model.UserStore
	db             model.Pinger
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new Router instance.
func New(
	authService handler.AuthService,
	countryService handler.CountryService,
	newGuard middleware.NewGuardFunc,
	codec model.TokenCodec,
	userStore model.UserStore,
	db model.Pinger,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		countryService: countryService,
		newGuard:       newGuard,
		codec:          codec,
		userStore:      userStore,
		db:             db,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the HTTP handler serving every route under /api.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	guard := middleware.NewGuard(r.newGuard, r.contextManager)
	authenticate := middleware.NewAuthenticate(r.codec, r.userStore, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	countryHandler := handler.NewCountry(r.countryService, r.logger)
	healthHandler := handler.NewHealth(r.db, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(logging.Handle)
	mux.Use(chimiddleware.Recoverer)

	mux.Route("/api", func(api chi.Router) {
		api.Get("/healthz", healthHandler.Check)

		api.Group(func(g chi.Router) {
			g.Use(guard.Handle)

			g.Post("/auth/register", authHandler.Register)
			g.Post("/auth/login", authHandler.Login)
			g.Post("/auth/google", authHandler.Google)
			g.Post("/logout", authHandler.Logout)

			g.Get("/countries", countryHandler.List)
			g.Get("/countries/search", countryHandler.Search)
			g.Get("/countries/code/{code}", countryHandler.ByCode)
			g.Get("/countries/{id}", countryHandler.Show)

			g.Group(func(p chi.Router) {
				p.Use(authenticate.Handle)

				p.Get("/auth/user", authHandler.User)
				p.Post("/auth/refresh", authHandler.Refresh)
				p.Post("/auth/logout", authHandler.Logout)
			})
		})
	})

	return mux
}
