// internal/api/router.go
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"agent-ledger/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
// A non-positive timeout falls back to handler.DefaultTimeout.
func NewRouter(userHandler *handler.UserHandler, creditHandler *handler.CreditHandler, timeout time.Duration) http.Handler {
	if timeout <= 0 {
		timeout = handler.DefaultTimeout
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.CreateUser)
		r.Get("/", userHandler.ListUsers)
		r.Get("/{pubkey}", userHandler.GetUser)
		r.Patch("/{pubkey}", userHandler.MutateSubscriptions)
		r.Get("/{pubkey}/usage", userHandler.GetUsage)
	})

	r.Get("/packages", creditHandler.ListPackages)

	r.Route("/credits", func(r chi.Router) {
		r.Post("/buy", creditHandler.BuyCredits)
		r.Post("/debit", creditHandler.Debit)
		r.Post("/refund", creditHandler.Refund)
	})

	return r
}
