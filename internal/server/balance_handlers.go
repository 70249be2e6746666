package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PrAyAg9/diivido-sub000/internal/calculator"
)

// The calculator package carries no wire concerns, so the responses below
// re-shape its results into the JSON the API serves.

type userAmountResponse struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

type balanceSummaryResponse struct {
	UsersYouOwe    []userAmountResponse `json:"users_you_owe"`
	UsersWhoOweYou []userAmountResponse `json:"users_who_owe_you"`
	TotalOwed      float64              `json:"total_owed"`
	TotalOwedToYou float64              `json:"total_owed_to_you"`
	NetBalance     float64              `json:"net_balance"`
}

type memberBalanceResponse struct {
	UserID     string  `json:"user_id"`
	TotalPaid  float64 `json:"total_paid"`
	TotalOwed  float64 `json:"total_owed"`
	NetBalance float64 `json:"net_balance"`
}

type settlementResponse struct {
	FromUserID string  `json:"from_user_id"`
	ToUserID   string  `json:"to_user_id"`
	Amount     float64 `json:"amount"`
}

func toUserAmounts(amounts []calculator.UserAmount) []userAmountResponse {
	out := make([]userAmountResponse, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, userAmountResponse{UserID: a.UserID, Amount: a.Amount})
	}
	return out
}

func (s *Server) getUserBalances(w http.ResponseWriter, r *http.Request) {
	summary, err := s.balances.UserBalances(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceSummaryResponse{
		UsersYouOwe:    toUserAmounts(summary.UsersYouOwe),
		UsersWhoOweYou: toUserAmounts(summary.UsersWhoOweYou),
		TotalOwed:      summary.TotalOwed,
		TotalOwedToYou: summary.TotalOwedToYou,
		NetBalance:     summary.NetBalance,
	})
}

func (s *Server) getGroupBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.balances.GroupBalances(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]memberBalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, memberBalanceResponse{
			UserID:     b.UserID,
			TotalPaid:  b.TotalPaid,
			TotalOwed:  b.TotalOwed,
			NetBalance: b.NetBalance,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"balances": out})
}

func (s *Server) getGroupSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.balances.GroupSettlements(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]settlementResponse, 0, len(settlements))
	for _, t := range settlements {
		out = append(out, settlementResponse{FromUserID: t.From, ToUserID: t.To, Amount: t.Amount})
	}
	writeJSON(w, http.StatusOK, map[string]any{"settlements": out})
}
