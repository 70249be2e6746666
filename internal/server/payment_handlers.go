package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PrAyAg9/diivido-sub000/internal/models"
)

type paymentRequest struct {
	GroupID    string  `json:"group_id"`
	FromUserID string  `json:"from_user_id"`
	ToUserID   string  `json:"to_user_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Note       string  `json:"note"`
}

func (s *Server) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	payment := &models.Payment{
		GroupID:    req.GroupID,
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Note:       req.Note,
	}
	if err := s.payments.Record(r.Context(), payment); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (s *Server) getPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := s.payments.Get(r.Context(), chi.URLParam(r, "paymentID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (s *Server) deletePayment(w http.ResponseWriter, r *http.Request) {
	if err := s.payments.Delete(r.Context(), chi.URLParam(r, "paymentID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) completePayment(w http.ResponseWriter, r *http.Request) {
	payment, err := s.payments.Complete(r.Context(), chi.URLParam(r, "paymentID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (s *Server) failPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := s.payments.Fail(r.Context(), chi.URLParam(r, "paymentID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (s *Server) listGroupPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.payments.ListByGroup(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"payments": payments})
}
