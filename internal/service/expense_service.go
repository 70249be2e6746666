package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PrAyAg9/diivido-sub000/internal/models"
	"github.com/PrAyAg9/diivido-sub000/internal/storage"
)

// ExpenseService manages the expense side of the ledger.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// Create validates and persists an expense. If the expense has no splits but
// SplitAmong is given, the amount is divided equally first. Malformed input is
// rejected here so the balance engine downstream never sees it.
func (s *ExpenseService) Create(ctx context.Context, expense *models.Expense, splitAmong []string) error {
	if len(expense.Splits) == 0 && len(splitAmong) > 0 {
		expense.Splits = models.SplitEqually(expense.Amount, splitAmong)
	}

	if err := expense.Validate(); err != nil {
		slog.Error("CreateExpense validation failed", "payer_id", expense.PayerID, "error", err)
		return fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}

	if expense.GroupID != "" {
		if err := s.ensureParticipantsInGroup(ctx, expense); err != nil {
			return err
		}
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return err
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"payer_id", expense.PayerID,
		"amount", expense.Amount,
		"splits_count", len(expense.Splits),
	)
	return nil
}

// ensureParticipantsInGroup auto-adds the payer and split participants to the
// expense's group so group balances always cover everyone on the ledger.
func (s *ExpenseService) ensureParticipantsInGroup(ctx context.Context, expense *models.Expense) error {
	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		slog.Error("CreateExpense: failed to get group", "group_id", expense.GroupID, "error", err)
		return err
	}

	var newMembers []models.Member
	if !group.HasMember(expense.PayerID) {
		newMembers = append(newMembers, models.Member{UserID: expense.PayerID})
	}
	for _, split := range expense.Splits {
		if !group.HasMember(split.UserID) && split.UserID != expense.PayerID {
			newMembers = append(newMembers, models.Member{UserID: split.UserID})
		}
	}
	if len(newMembers) == 0 {
		return nil
	}

	if err := s.store.AddGroupMembers(ctx, expense.GroupID, newMembers); err != nil {
		slog.Error("CreateExpense: failed to add participants to group", "group_id", expense.GroupID, "error", err)
		return err
	}
	slog.Info("Auto-added participants to group", "group_id", expense.GroupID, "count", len(newMembers))
	return nil
}

// Get retrieves an expense by ID.
func (s *ExpenseService) Get(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		slog.Error("GetExpense failed", "expense_id", expenseID, "error", err)
		return nil, err
	}
	return expense, nil
}

// ListByGroup retrieves a group's expenses, newest first.
func (s *ExpenseService) ListByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		slog.Error("ListExpensesByGroup failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return expenses, nil
}

// MarkSplitPaid flags one user's share of an expense as settled out of band.
// This is record-keeping only, independent of the payment ledger.
func (s *ExpenseService) MarkSplitPaid(ctx context.Context, expenseID, userID string, paid bool) error {
	if err := s.store.SetSplitPaid(ctx, expenseID, userID, paid); err != nil {
		slog.Error("MarkSplitPaid failed", "expense_id", expenseID, "user_id", userID, "error", err)
		return err
	}
	slog.Info("Split marked", "expense_id", expenseID, "user_id", userID, "paid", paid)
	return nil
}

// Delete removes an expense by ID.
func (s *ExpenseService) Delete(ctx context.Context, expenseID string) error {
	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expenseID, "error", err)
		return err
	}
	slog.Info("Expense deleted", "expense_id", expenseID)
	return nil
}
