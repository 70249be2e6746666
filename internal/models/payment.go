package models

import (
	"errors"
	"fmt"
)

// PaymentStatus is the lifecycle state of a payment record.
type PaymentStatus string

const (
	// PaymentPending is the initial state of a recorded payment.
	PaymentPending PaymentStatus = "pending"

	// PaymentCompleted marks a payment that went through. Only completed
	// payments affect balances.
	PaymentCompleted PaymentStatus = "completed"

	// PaymentFailed marks a payment that did not go through.
	PaymentFailed PaymentStatus = "failed"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether a status change is allowed.
// Pending payments may complete or fail; completed and failed are terminal.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return s == PaymentPending && (next == PaymentCompleted || next == PaymentFailed)
}

// Payment represents a direct payment from one user to another.
// No money actually moves here; this is record-keeping only.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id"`

	// GroupID is the group this payment settles debt within.
	// Empty for a groupless direct payment.
	GroupID string `json:"group_id,omitempty"`

	// FromUserID is the user who paid (debtor settling up).
	FromUserID string `json:"from_user_id"`

	// ToUserID is the user who received payment (creditor being paid).
	ToUserID string `json:"to_user_id"`

	// Amount is the payment amount. Always positive. An over-payment is not
	// rejected; the resulting balance simply flips sign.
	Amount float64 `json:"amount"`

	// Currency is carried as a label only.
	Currency string `json:"currency"`

	// Status is the lifecycle state. Only completed payments count.
	Status PaymentStatus `json:"status"`

	// Note is an optional description for the payment.
	Note string `json:"note,omitempty"`

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64 `json:"created_at"`
}

// Validate checks the payment is well formed. Self-payments are rejected here
// because the balance engine documents them as a caller-side precondition.
func (p *Payment) Validate() error {
	if p.FromUserID == "" || p.ToUserID == "" {
		return errors.New("payment requires both a payer and a payee")
	}
	if p.FromUserID == p.ToUserID {
		return fmt.Errorf("self-payment not allowed for user %s", p.FromUserID)
	}
	if p.Amount <= 0 {
		return fmt.Errorf("payment amount must be positive, got %.2f", p.Amount)
	}
	if p.Status != "" && !p.Status.Valid() {
		return fmt.Errorf("unknown payment status %q", p.Status)
	}
	return nil
}
