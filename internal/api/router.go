package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/playforge/casino-api/internal/services/wager"
)

// NewRouter constructs the router with all API endpoints registered.
func NewRouter(svc *wager.Service, verifier TokenVerifier) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Use(requestMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(verifier))

		r.Get("/balance", h.GetBalanceHandler)
		r.Get("/history", h.GetHistoryHandler)
		r.Post("/play/{game}", h.PlayHandler)
	})

	return r
}
