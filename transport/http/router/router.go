package router

import (
	"net/http"

	"todoapp/config"
	_ "todoapp/docs" // swagger docs registration
	"todoapp/internal/handlers/auth"
	"todoapp/internal/handlers/todo"
	"todoapp/shared/failure"
	"todoapp/transport/http/middleware"
	"todoapp/transport/http/response"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	apiPrefix   = "/api"
	swaggerPath = "/swagger/*"
	swaggerDoc  = "/swagger/doc.json"
)

type DomainHandlers struct {
	Todo todo.Handler
	Auth auth.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Middleware     middleware.AppMiddleware
	Config         *config.Config
}

// SetupRoutes installs the middleware stack and mounts every domain both at
// the root and under /api.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.Middleware.RequestID)
	router.Use(r.Middleware.RequestLogger)
	router.Use(chiMiddleware.Recoverer)

	if corsConfig := r.Config.App.CORS; corsConfig.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsConfig.AllowedOrigins,
			AllowedMethods:   corsConfig.AllowedMethods,
			AllowedHeaders:   corsConfig.AllowedHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAgeSeconds,
		}))
	}

	router.Use(r.Middleware.Tracing)
	router.Use(r.Middleware.RateLimit())

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WithError(w, failure.NotFound("Route not found"))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.WithErrorMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	router.Get(swaggerPath, httpSwagger.Handler(httpSwagger.URL(swaggerDoc)))

	r.domainRoutes(router)
	router.Route(apiPrefix, r.domainRoutes)
}

func (r *Router) domainRoutes(router chi.Router) {
	r.DomainHandlers.Todo.Router(router)
	r.DomainHandlers.Auth.Router(router)
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middleware:     appMiddleware,
		Config:         cfg,
	}
}
