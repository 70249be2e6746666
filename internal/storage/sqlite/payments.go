package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PrAyAg9/diivido-sub000/internal/models"
	"github.com/PrAyAg9/diivido-sub000/internal/storage"
)

// CreatePayment persists a new payment record.
func (s *Store) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}
	if payment.Currency == "" {
		payment.Currency = "USD"
	}
	if payment.Status == "" {
		payment.Status = models.PaymentPending
	}

	var groupID interface{}
	if payment.GroupID != "" {
		groupID = payment.GroupID
	}
	var note interface{}
	if payment.Note != "" {
		note = payment.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, group_id, from_user_id, to_user_id, amount, currency, status, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, groupID, payment.FromUserID, payment.ToUserID,
		payment.Amount, payment.Currency, string(payment.Status), note, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment by ID.
func (s *Store) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment := &models.Payment{}
	var groupID, note sql.NullString
	var status string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, from_user_id, to_user_id, amount, currency, status, note, created_at
		 FROM payments WHERE id = ?`,
		paymentID,
	).Scan(&payment.ID, &groupID, &payment.FromUserID, &payment.ToUserID,
		&payment.Amount, &payment.Currency, &status, &note, &payment.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	payment.Status = models.PaymentStatus(status)
	if groupID.Valid {
		payment.GroupID = groupID.String
	}
	if note.Valid {
		payment.Note = note.String
	}
	return payment, nil
}

// UpdatePaymentStatus sets a payment's status.
func (s *Store) UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE payments SET status = ? WHERE id = ?",
		string(status), paymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) scanPayments(rows *sql.Rows) ([]*models.Payment, error) {
	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		var groupID, note sql.NullString
		var status string
		if err := rows.Scan(&payment.ID, &groupID, &payment.FromUserID, &payment.ToUserID,
			&payment.Amount, &payment.Currency, &status, &note, &payment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payment.Status = models.PaymentStatus(status)
		if groupID.Valid {
			payment.GroupID = groupID.String
		}
		if note.Valid {
			payment.Note = note.String
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// ListPaymentsByGroup retrieves a group's payments in every status, newest first.
func (s *Store) ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, from_user_id, to_user_id, amount, currency, status, note, created_at
		 FROM payments WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by group: %w", err)
	}
	defer rows.Close()
	return s.scanPayments(rows)
}

// ListCompletedPaymentsForUser retrieves the most recent completed payments
// the user sent or received, including groupless direct payments.
func (s *Store) ListCompletedPaymentsForUser(ctx context.Context, userID string, limit int) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, from_user_id, to_user_id, amount, currency, status, note, created_at
		 FROM payments
		 WHERE status = ? AND (from_user_id = ? OR to_user_id = ?)
		 ORDER BY created_at DESC, id
		 LIMIT ?`,
		string(models.PaymentCompleted), userID, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed payments for user: %w", err)
	}
	defer rows.Close()
	return s.scanPayments(rows)
}

// DeletePayment removes a payment record.
func (s *Store) DeletePayment(ctx context.Context, paymentID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	return nil
}
