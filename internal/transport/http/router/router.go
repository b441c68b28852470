// Package router assembles the chi router serving the public API.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vedran77/sortinghat/internal/transport/http/handlers"
	"github.com/vedran77/sortinghat/internal/transport/http/middleware"
)

type Deps struct {
	Auth       *handlers.AuthHandler
	Characters *handlers.CharacterHandler
	Favorites  *handlers.FavoriteHandler
	Sorting    *handlers.SortingHandler

	Tokens  middleware.TokenParser
	Users   middleware.UserLookup
	Limiter middleware.Limiter

	Logger      *slog.Logger
	CORSOrigins []string

	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy bool
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if d.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(d.Logger), chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	limit := middleware.RateLimit(d.Limiter, d.Logger)
	authenticated := middleware.Auth(d.Tokens, d.Users)

	r.Route("/users", func(r chi.Router) {
		r.With(limit).Post("/register", d.Auth.Register)
		r.With(limit).Post("/login", d.Auth.Login)
		r.With(limit).Post("/googleLogin", d.Auth.GoogleLogin)
		r.With(authenticated).Get("/profile", d.Auth.Profile)
	})

	r.Route("/fav", func(r chi.Router) {
		r.Use(authenticated)

		r.Get("/", d.Characters.List)
		r.Get("/user", d.Favorites.List)
		r.With(limit).Post("/sortHat", d.Sorting.Sort)
		r.With(limit).Post("/sortHat/email", d.Sorting.ResendWelcome)

		r.Get("/{id}", d.Characters.Detail)
		r.Post("/{id}", d.Favorites.Add)
		r.Delete("/{id}", d.Favorites.Remove)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not found"}`))
	})

	return r
}
