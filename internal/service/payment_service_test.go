package service

import (
	"context"
	"errors"
	"testing"

	"github.com/PrAyAg9/diivido-sub000/internal/models"
	"github.com/PrAyAg9/diivido-sub000/internal/storage"
)

func TestRecordPaymentValidation(t *testing.T) {
	svc := setupServices(t)
	group := seedGroup(t, svc)
	ctx := context.Background()

	tests := []struct {
		name    string
		payment *models.Payment
		wantErr bool
	}{
		{
			name:    "valid group payment",
			payment: &models.Payment{GroupID: group.ID, FromUserID: "bob", ToUserID: "alice", Amount: 30},
		},
		{
			name:    "valid direct payment without group",
			payment: &models.Payment{FromUserID: "dave", ToUserID: "erin", Amount: 5},
		},
		{
			name:    "self-payment rejected",
			payment: &models.Payment{FromUserID: "bob", ToUserID: "bob", Amount: 30},
			wantErr: true,
		},
		{
			name:    "non-positive amount rejected",
			payment: &models.Payment{FromUserID: "bob", ToUserID: "alice", Amount: 0},
			wantErr: true,
		},
		{
			name:    "payer outside the group rejected",
			payment: &models.Payment{GroupID: group.ID, FromUserID: "mallory", ToUserID: "alice", Amount: 10},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.payments.Record(ctx, tt.payment)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Record() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if tt.payment.Status != models.PaymentPending {
				t.Errorf("new payment status = %s, want pending", tt.payment.Status)
			}
		})
	}
}

func TestPaymentTransitions(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	record := func() *models.Payment {
		payment := &models.Payment{FromUserID: "bob", ToUserID: "alice", Amount: 10}
		if err := svc.payments.Record(ctx, payment); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		return payment
	}

	t.Run("pending completes", func(t *testing.T) {
		payment := record()
		updated, err := svc.payments.Complete(ctx, payment.ID)
		if err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
		if updated.Status != models.PaymentCompleted {
			t.Errorf("status = %s, want completed", updated.Status)
		}
	})

	t.Run("pending fails", func(t *testing.T) {
		payment := record()
		updated, err := svc.payments.Fail(ctx, payment.ID)
		if err != nil {
			t.Fatalf("Fail failed: %v", err)
		}
		if updated.Status != models.PaymentFailed {
			t.Errorf("status = %s, want failed", updated.Status)
		}
	})

	t.Run("completed is terminal", func(t *testing.T) {
		payment := record()
		if _, err := svc.payments.Complete(ctx, payment.ID); err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
		if _, err := svc.payments.Fail(ctx, payment.ID); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument re-transitioning, got %v", err)
		}
		if _, err := svc.payments.Complete(ctx, payment.ID); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument completing twice, got %v", err)
		}
	})

	t.Run("failed payment never counts toward balances", func(t *testing.T) {
		fresh := setupServices(t)
		seedGroup(t, fresh)

		payment := &models.Payment{FromUserID: "bob", ToUserID: "alice", Amount: 30}
		if err := fresh.payments.Record(ctx, payment); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if _, err := fresh.payments.Fail(ctx, payment.ID); err != nil {
			t.Fatalf("Fail failed: %v", err)
		}

		summary, err := fresh.balances.UserBalances(ctx, "alice")
		if err != nil {
			t.Fatalf("UserBalances failed: %v", err)
		}
		if summary.NetBalance != 60 {
			t.Errorf("NetBalance = %v, want 60 untouched by failed payment", summary.NetBalance)
		}
	})
}

func TestDeletePayment(t *testing.T) {
	svc := setupServices(t)
	group := seedGroup(t, svc)
	ctx := context.Background()

	payment := &models.Payment{GroupID: group.ID, FromUserID: "bob", ToUserID: "alice", Amount: 30}
	if err := svc.payments.Record(ctx, payment); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, err := svc.payments.Complete(ctx, payment.ID); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	summary, err := svc.balances.UserBalances(ctx, "bob")
	if err != nil {
		t.Fatalf("UserBalances failed: %v", err)
	}
	if summary.NetBalance != 0 {
		t.Fatalf("NetBalance = %v, want 0 after settling up", summary.NetBalance)
	}

	t.Run("deleting a completed payment reverts balances", func(t *testing.T) {
		if err := svc.payments.Delete(ctx, payment.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		summary, err := svc.balances.UserBalances(ctx, "bob")
		if err != nil {
			t.Fatalf("UserBalances failed: %v", err)
		}
		if summary.NetBalance != -30 {
			t.Errorf("NetBalance = %v, want -30 with the payment gone", summary.NetBalance)
		}
		if _, err := svc.payments.Get(ctx, payment.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("deleting twice reports not found", func(t *testing.T) {
		if err := svc.payments.Delete(ctx, payment.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
