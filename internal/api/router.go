package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"stock-watchlist-go/internal/auth"
	"stock-watchlist-go/internal/config"
)

// NewRouter wires the middleware chain and every route.
func NewRouter(cfg *config.Server, h *Handler, authenticator *auth.Authenticator, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logging(logger))
	r.Use(Recover(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(RateLimit(cfg.RateLimit, cfg.RateLimitBurst))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, CodeNotFound, "Not found")
	})

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticate(authenticator, logger))

		r.Post("/auth/callback", h.AuthCallback)
		r.HandleFunc("/user/{email}", h.GetUser)

		r.Get("/search", h.Search)

		r.Get("/stocks", h.ListStocks)
		r.Post("/stocks", h.CreateStock)
		r.Delete("/stocks", h.DeleteStock)
		r.Post("/stocks/select", h.SelectStock)
		r.Get("/stocks/{symbol}/history", h.History)
		r.Get("/stocks/{symbol}/profile", h.Profile)

		r.Get("/news", h.News)

		r.Get("/dashboard", h.Dashboard)
		r.Delete("/dashboard/stocks/{id}", h.DashboardDelete)
	})

	return r
}
