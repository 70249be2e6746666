package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PrAyAg9/diivido-sub000/internal/models"
	"github.com/PrAyAg9/diivido-sub000/internal/storage"
)

// PaymentService manages direct payment records. Payments are record-keeping
// only; no money moves. A payment starts pending and must be completed before
// it affects any balance.
type PaymentService struct {
	store storage.Store
}

// NewPaymentService creates a new PaymentService with the given storage backend.
func NewPaymentService(store storage.Store) *PaymentService {
	return &PaymentService{store: store}
}

// Record validates and persists a new payment in pending status.
// Self-payments are rejected here, upholding the engine's precondition.
func (s *PaymentService) Record(ctx context.Context, payment *models.Payment) error {
	payment.Status = models.PaymentPending
	if err := payment.Validate(); err != nil {
		slog.Error("RecordPayment validation failed", "error", err)
		return fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}

	if payment.GroupID != "" {
		group, err := s.store.GetGroup(ctx, payment.GroupID)
		if err != nil {
			slog.Error("RecordPayment: failed to get group", "group_id", payment.GroupID, "error", err)
			return err
		}
		if !group.HasMember(payment.FromUserID) || !group.HasMember(payment.ToUserID) {
			return fmt.Errorf("%w: both users must belong to group %s", ErrInvalidArgument, payment.GroupID)
		}
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("RecordPayment failed", "error", err)
		return err
	}

	slog.Info("Payment recorded",
		"payment_id", payment.ID,
		"from_user_id", payment.FromUserID,
		"to_user_id", payment.ToUserID,
		"amount", payment.Amount,
	)
	return nil
}

// Complete marks a pending payment as completed, making it count toward
// balances.
func (s *PaymentService) Complete(ctx context.Context, paymentID string) (*models.Payment, error) {
	return s.transition(ctx, paymentID, models.PaymentCompleted)
}

// Fail marks a pending payment as failed. Failed payments never affect
// balances.
func (s *PaymentService) Fail(ctx context.Context, paymentID string) (*models.Payment, error) {
	return s.transition(ctx, paymentID, models.PaymentFailed)
}

func (s *PaymentService) transition(ctx context.Context, paymentID string, next models.PaymentStatus) (*models.Payment, error) {
	payment, err := s.store.GetPayment(ctx, paymentID)
	if err != nil {
		slog.Error("Payment transition: get failed", "payment_id", paymentID, "error", err)
		return nil, err
	}

	if !payment.Status.CanTransitionTo(next) {
		slog.Warn("Payment transition rejected",
			"payment_id", paymentID,
			"from", payment.Status,
			"to", next,
		)
		return nil, fmt.Errorf("%w: payment %s is %s, cannot become %s",
			ErrInvalidArgument, paymentID, payment.Status, next)
	}

	if err := s.store.UpdatePaymentStatus(ctx, paymentID, next); err != nil {
		slog.Error("Payment transition: update failed", "payment_id", paymentID, "error", err)
		return nil, err
	}

	payment.Status = next
	slog.Info("Payment status changed", "payment_id", paymentID, "status", next)
	return payment, nil
}

// Get retrieves a payment by ID.
func (s *PaymentService) Get(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := s.store.GetPayment(ctx, paymentID)
	if err != nil {
		slog.Error("GetPayment failed", "payment_id", paymentID, "error", err)
		return nil, err
	}
	return payment, nil
}

// Delete removes a payment record. Deleting a completed payment removes its
// effect from every subsequent balance computation, same as deleting an
// expense.
func (s *PaymentService) Delete(ctx context.Context, paymentID string) error {
	if err := s.store.DeletePayment(ctx, paymentID); err != nil {
		slog.Error("DeletePayment failed", "payment_id", paymentID, "error", err)
		return err
	}
	slog.Info("Payment deleted", "payment_id", paymentID)
	return nil
}

// ListByGroup retrieves a group's payments in every status, newest first.
func (s *PaymentService) ListByGroup(ctx context.Context, groupID string) ([]*models.Payment, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByGroup(ctx, groupID)
	if err != nil {
		slog.Error("ListPaymentsByGroup failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return payments, nil
}
