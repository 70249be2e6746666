// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/PrAyAg9/diivido-sub000/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
// Implementations wrap it with %w so callers can use errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger storage operations. The balance
// engine only ever consumes read snapshots from this interface; the sole
// mutations the system performs against computed state are flipping a split's
// paid flag and advancing a payment's status, both single-record writes here.
//
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group. The group's ID and CreatedAt fields
	// are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// UpdateGroup replaces a group's name and membership.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group. Group-scoped expenses and payments are
	// kept but detached.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddGroupMembers adds members to an existing group, ignoring users that
	// already belong.
	AddGroupMembers(ctx context.Context, groupID string, members []models.Member) error

	// CreateExpense persists an expense and its splits transactionally.
	// ID and CreatedAt are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup retrieves a group's expenses, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// ListExpensesForUser retrieves the most recent expenses the user is
	// involved in, as payer or split participant, capped at limit.
	ListExpensesForUser(ctx context.Context, userID string, limit int) ([]*models.Expense, error)

	// SetSplitPaid flips one split's paid flag.
	SetSplitPaid(ctx context.Context, expenseID, userID string, paid bool) error

	// DeleteExpense removes an expense and its splits.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreatePayment persists a payment. ID, CreatedAt and a default pending
	// status are populated by the store.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// GetPayment retrieves a payment by ID.
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)

	// UpdatePaymentStatus sets a payment's status. Transition rules are the
	// service layer's responsibility.
	UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error

	// ListPaymentsByGroup retrieves a group's payments in every status,
	// newest first.
	ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error)

	// ListCompletedPaymentsForUser retrieves the most recent completed
	// payments the user sent or received, across all groups and groupless
	// direct payments, capped at limit.
	ListCompletedPaymentsForUser(ctx context.Context, userID string, limit int) ([]*models.Payment, error)

	// DeletePayment removes a payment record.
	DeletePayment(ctx context.Context, paymentID string) error

	// Close releases any resources held by the store.
	Close() error
}
