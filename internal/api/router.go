// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bettracker/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(betHandler *handler.BetHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Bet API routes
	r.Route("/bets", func(r chi.Router) {
		r.Post("/", betHandler.CreateBet)
		r.Post("/quick", betHandler.CreateQuickBet)

		r.Get("/today", betHandler.ListToday)
		r.Get("/upcoming", betHandler.ListUpcoming)
		r.Get("/settled", betHandler.ListSettled)
		r.Get("/settled/export", betHandler.ExportSettledCSV)
		r.Get("/summary", betHandler.Summary)

		r.Route("/{betID}", func(r chi.Router) {
			r.Post("/win", betHandler.SettleWin)
			r.Post("/loss", betHandler.SettleLoss)
			r.Post("/push", betHandler.SettlePush)
			r.Post("/cashout", betHandler.CashOut)
			r.Post("/reset", betHandler.ResetBet)
			r.Delete("/", betHandler.DeleteBet)
		})
	})

	// Default-stake memory for the entry flow
	r.Get("/sports/{sport}/last-stake", betHandler.LastStake)

	return r
}
