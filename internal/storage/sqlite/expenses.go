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

// CreateExpense persists an expense and its splits in one transaction.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Currency == "" {
		expense.Currency = "USD"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID interface{}
	if expense.GroupID != "" {
		groupID = expense.GroupID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, payer_id, description, category, amount, currency, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, groupID, expense.PayerID, expense.Description, expense.Category,
		expense.Amount, expense.Currency, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, user_id, amount, paid) VALUES (?, ?, ?, ?)",
			expense.ID, split.UserID, split.Amount, split.Paid,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including all splits.
func (s *Store) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var groupID sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, payer_id, description, category, amount, currency, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &groupID, &expense.PayerID, &expense.Description,
		&expense.Category, &expense.Amount, &expense.Currency, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if groupID.Valid {
		expense.GroupID = groupID.String
	}

	splits, err := s.expenseSplits(ctx, expense.ID)
	if err != nil {
		return nil, err
	}
	expense.Splits = splits
	return expense, nil
}

func (s *Store) expenseSplits(ctx context.Context, expenseID string) ([]models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, amount, paid FROM expense_splits WHERE expense_id = ? ORDER BY user_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []models.Split
	for rows.Next() {
		var split models.Split
		if err := rows.Scan(&split.UserID, &split.Amount, &split.Paid); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

// scanExpenses reads expense rows and hydrates each with its splits.
func (s *Store) scanExpenses(ctx context.Context, rows *sql.Rows) ([]*models.Expense, error) {
	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var groupID sql.NullString
		if err := rows.Scan(&expense.ID, &groupID, &expense.PayerID, &expense.Description,
			&expense.Category, &expense.Amount, &expense.Currency, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if groupID.Valid {
			expense.GroupID = groupID.String
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		splits, err := s.expenseSplits(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
		expense.Splits = splits
	}
	return expenses, nil
}

// ListExpensesByGroup retrieves a group's expenses, newest first.
func (s *Store) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, payer_id, description, category, amount, currency, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	defer rows.Close()
	return s.scanExpenses(ctx, rows)
}

// ListExpensesForUser retrieves the most recent expenses the user is involved
// in, either as payer or split participant. The limit caps how much history a
// single balance computation reads.
func (s *Store) ListExpensesForUser(ctx context.Context, userID string, limit int) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, payer_id, description, category, amount, currency, created_at
		 FROM expenses
		 WHERE payer_id = ?
		    OR id IN (SELECT expense_id FROM expense_splits WHERE user_id = ?)
		 ORDER BY created_at DESC, id
		 LIMIT ?`,
		userID, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for user: %w", err)
	}
	defer rows.Close()
	return s.scanExpenses(ctx, rows)
}

// SetSplitPaid flips one split's paid flag.
func (s *Store) SetSplitPaid(ctx context.Context, expenseID, userID string, paid bool) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE expense_splits SET paid = ? WHERE expense_id = ? AND user_id = ?",
		paid, expenseID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update split: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("split for user %s on expense %s: %w", userID, expenseID, storage.ErrNotFound)
	}
	return nil
}

// DeleteExpense removes an expense by ID. Splits cascade.
func (s *Store) DeleteExpense(ctx context.Context, expenseID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}
