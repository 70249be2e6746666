package models

import (
	"errors"
	"fmt"
	"math"
)

// amountTolerance is how far split amounts may drift from the expense total
// before the expense is rejected. Matches the engine's settled-balance epsilon.
const amountTolerance = 0.01

// Expense represents a shared expense paid by one user and split among several.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to. Empty for a direct
	// expense outside any group.
	GroupID string `json:"group_id,omitempty"`

	// PayerID is the user who fronted the money.
	PayerID string `json:"payer_id"`

	// Description is a human-readable label (e.g., "Dinner at Luigi's").
	Description string `json:"description"`

	// Category is a free-form label used for budget breakdowns
	// (e.g., "food", "travel").
	Category string `json:"category,omitempty"`

	// Amount is the full expense amount. Always positive.
	Amount float64 `json:"amount"`

	// Currency is carried as a label only; no conversion ever happens.
	Currency string `json:"currency"`

	// Splits assigns shares of Amount to users. The payer's own split is
	// optional: if present it is economically a wash, if absent the payer
	// effectively covered 100% for the others.
	Splits []Split `json:"splits"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}

// Split is one user's assigned share of an expense.
type Split struct {
	// UserID identifies the user this share belongs to.
	UserID string `json:"user_id"`

	// Amount is this user's share. Never negative.
	Amount float64 `json:"amount"`

	// Paid marks this share as settled out of band. A paid split no longer
	// contributes to any balance; it is an independent settlement signal,
	// additive with the Payment ledger.
	Paid bool `json:"paid"`
}

// Validate checks the expense is well formed: positive amount, at least one
// split, no duplicate split users, non-negative shares, and split amounts
// summing to the expense total within tolerance. Called at the storage
// boundary so downstream balance computation can assume clean input.
func (e *Expense) Validate() error {
	if e.PayerID == "" {
		return errors.New("expense requires a payer")
	}
	if e.Amount <= 0 {
		return fmt.Errorf("expense amount must be positive, got %.2f", e.Amount)
	}
	if len(e.Splits) == 0 {
		return errors.New("expense requires at least one split")
	}

	seen := make(map[string]bool, len(e.Splits))
	sum := 0.0
	for _, split := range e.Splits {
		if split.UserID == "" {
			return errors.New("split requires a user")
		}
		if split.Amount < 0 {
			return fmt.Errorf("split amount for user %s must not be negative, got %.2f", split.UserID, split.Amount)
		}
		if seen[split.UserID] {
			return fmt.Errorf("duplicate split for user %s", split.UserID)
		}
		seen[split.UserID] = true
		sum += split.Amount
	}

	if math.Abs(sum-e.Amount) > amountTolerance {
		return fmt.Errorf("splits sum to %.2f but expense total is %.2f", sum, e.Amount)
	}
	return nil
}

// SplitEqually divides amount evenly across the given users, distributing any
// leftover cents to the earliest users so the shares always sum exactly to the
// rounded total.
func SplitEqually(amount float64, userIDs []string) []Split {
	if len(userIDs) == 0 {
		return nil
	}

	cents := int64(math.Round(amount * 100))
	base := cents / int64(len(userIDs))
	remainder := cents % int64(len(userIDs))

	splits := make([]Split, len(userIDs))
	for i, userID := range userIDs {
		share := base
		if int64(i) < remainder {
			share++
		}
		splits[i] = Split{UserID: userID, Amount: float64(share) / 100}
	}
	return splits
}
