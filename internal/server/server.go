// Package server exposes the Divido services over a JSON HTTP API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PrAyAg9/diivido-sub000/internal/config"
	"github.com/PrAyAg9/diivido-sub000/internal/service"
	"github.com/PrAyAg9/diivido-sub000/internal/storage"
)

// Server wires the services to HTTP routes.
type Server struct {
	groups     *service.GroupService
	expenses   *service.ExpenseService
	payments   *service.PaymentService
	balances   *service.BalanceService
	corsOrigin string
}

// New creates a Server over the given store.
func New(store storage.Store, cfg *config.Config) *Server {
	return &Server{
		groups:     service.NewGroupService(store),
		expenses:   service.NewExpenseService(store),
		payments:   service.NewPaymentService(store),
		balances:   service.NewBalanceService(store, cfg.HistoryLimit),
		corsOrigin: cfg.CORSOrigin,
	}
}

// Router builds the HTTP handler with the full middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(requestMetrics)
	r.Use(corsHeaders(s.corsOrigin))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/groups", func(r chi.Router) {
			r.Post("/", s.createGroup)
			r.Get("/", s.listGroups)
			r.Route("/{groupID}", func(r chi.Router) {
				r.Get("/", s.getGroup)
				r.Put("/", s.updateGroup)
				r.Delete("/", s.deleteGroup)
				r.Post("/members", s.addGroupMembers)
				r.Get("/expenses", s.listGroupExpenses)
				r.Get("/payments", s.listGroupPayments)
				r.Get("/balances", s.getGroupBalances)
				r.Get("/settlements", s.getGroupSettlements)
			})
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", s.createExpense)
			r.Route("/{expenseID}", func(r chi.Router) {
				r.Get("/", s.getExpense)
				r.Delete("/", s.deleteExpense)
				r.Post("/splits/{userID}/paid", s.markSplitPaid)
			})
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", s.recordPayment)
			r.Route("/{paymentID}", func(r chi.Router) {
				r.Get("/", s.getPayment)
				r.Delete("/", s.deletePayment)
				r.Post("/complete", s.completePayment)
				r.Post("/fail", s.failPayment)
			})
		})

		r.Get("/users/{userID}/balances", s.getUserBalances)
	})

	return r
}
