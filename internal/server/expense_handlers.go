package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PrAyAg9/diivido-sub000/internal/models"
)

type expenseRequest struct {
	GroupID     string         `json:"group_id"`
	PayerID     string         `json:"payer_id"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Amount      float64        `json:"amount"`
	Currency    string         `json:"currency"`
	Splits      []models.Split `json:"splits"`

	// SplitAmong divides Amount equally when Splits is empty.
	SplitAmong []string `json:"split_among"`
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	expense := &models.Expense{
		GroupID:     req.GroupID,
		PayerID:     req.PayerID,
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Splits:      req.Splits,
	}
	if err := s.expenses.Create(r.Context(), expense, req.SplitAmong); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) getExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenses.Get(r.Context(), chi.URLParam(r, "expenseID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), chi.URLParam(r, "expenseID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) markSplitPaid(w http.ResponseWriter, r *http.Request) {
	// Empty body means paid=true; the body can set it back explicitly.
	req := struct {
		Paid *bool `json:"paid"`
	}{}
	if err := decodeJSONIfPresent(r, &req); err != nil {
		writeError(w, err)
		return
	}
	paid := true
	if req.Paid != nil {
		paid = *req.Paid
	}

	expenseID := chi.URLParam(r, "expenseID")
	userID := chi.URLParam(r, "userID")
	if err := s.expenses.MarkSplitPaid(r.Context(), expenseID, userID, paid); err != nil {
		writeError(w, err)
		return
	}

	expense, err := s.expenses.Get(r.Context(), expenseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) listGroupExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListByGroup(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"expenses": expenses})
}
