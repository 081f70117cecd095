package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Varun5711/devconnect/internal/logger"
	"github.com/Varun5711/devconnect/internal/middleware"
)

type RouterDeps struct {
	Auth           *AuthHandler
	Profiles       *ProfileHandler
	Health         *HealthHandler
	Docs           *SwaggerHandler
	Gate           *middleware.AuthMiddleware
	Limiter        *middleware.RateLimiter
	Log            *logger.Logger
	RequestTimeout time.Duration
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(chimw.Recoverer)
	if d.RequestTimeout > 0 {
		r.Use(chimw.Timeout(d.RequestTimeout))
	}

	r.Get("/health", d.Health.Health)
	if d.Docs != nil {
		r.Get("/docs", d.Docs.ServeSwaggerUI)
		r.Get("/docs/", d.Docs.ServeSwaggerUI)
		r.Get("/openapi.yaml", d.Docs.ServeSpec)
	}

	r.Route("/api", func(r chi.Router) {
		r.With(d.Limiter.Middleware).Post("/users", d.Auth.Register)

		r.Route("/auth", func(r chi.Router) {
			r.With(d.Limiter.Middleware).Post("/", d.Auth.Login)
			r.With(d.Gate.RequireAuth).Get("/", d.Auth.CurrentUser)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", d.Profiles.List)
			r.Get("/user/{userID}", d.Profiles.GetByUserID)
			r.Get("/github/{username}", d.Profiles.GitHubRepos)

			r.Group(func(r chi.Router) {
				r.Use(d.Gate.RequireAuth)
				r.Post("/", d.Profiles.Upsert)
				r.Put("/", d.Profiles.Upsert)
				r.Delete("/", d.Profiles.DeleteAccount)
				r.Get("/me", d.Profiles.GetMine)
				r.Put("/experience", d.Profiles.AddExperience)
				r.Delete("/experience/{expID}", d.Profiles.RemoveExperience)
				r.Put("/education", d.Profiles.AddEducation)
				r.Delete("/education/{eduID}", d.Profiles.RemoveEducation)
			})
		})
	})

	return r
}
