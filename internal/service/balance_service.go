package service

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/PrAyAg9/diivido-sub000/internal/calculator"
	"github.com/PrAyAg9/diivido-sub000/internal/models"
	"github.com/PrAyAg9/diivido-sub000/internal/storage"
)

// balanceComputations counts engine invocations per scope; recomputation cost
// grows with history size, so this is the number to watch.
var balanceComputations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "divido_balance_computations_total",
	Help: "Number of balance/settlement computations, by scope.",
}, []string{"scope"})

// DefaultHistoryLimit caps how many expense and payment records a single
// global balance computation reads. History is unbounded; the cap keeps
// request cost flat.
const DefaultHistoryLimit = 50

// BalanceService answers balance and settlement queries by reading a ledger
// snapshot from the store and running the calculator engine over it. Every
// query recomputes from scratch; nothing derived is ever persisted.
type BalanceService struct {
	store        storage.Store
	historyLimit int
}

// NewBalanceService creates a BalanceService. A historyLimit of zero or less
// falls back to DefaultHistoryLimit.
func NewBalanceService(store storage.Store, historyLimit int) *BalanceService {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &BalanceService{store: store, historyLimit: historyLimit}
}

// UserBalances computes the global cross-group view for one user: every
// recent expense and completed payment they are involved in, regardless of
// group, folded into a categorized summary.
func (s *BalanceService) UserBalances(ctx context.Context, userID string) (*calculator.BalanceSummary, error) {
	expenses, err := s.store.ListExpensesForUser(ctx, userID, s.historyLimit)
	if err != nil {
		slog.Error("UserBalances: failed to list expenses", "user_id", userID, "error", err)
		return nil, err
	}
	payments, err := s.store.ListCompletedPaymentsForUser(ctx, userID, s.historyLimit)
	if err != nil {
		slog.Error("UserBalances: failed to list payments", "user_id", userID, "error", err)
		return nil, err
	}

	summary := calculator.ComputeUserBalances(userID, expensesForBalance(expenses), paymentsForBalance(payments))
	balanceComputations.WithLabelValues("user").Inc()

	slog.Debug("User balances computed",
		"user_id", userID,
		"expenses_count", len(expenses),
		"payments_count", len(payments),
		"net_balance", summary.NetBalance,
	)
	return summary, nil
}

// GroupBalances computes every member's netted position within one group.
// The same accumulation rules as the global view, scoped to the group's
// ledger.
func (s *BalanceService) GroupBalances(ctx context.Context, groupID string) ([]calculator.MemberBalance, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Error("GroupBalances: failed to get group", "group_id", groupID, "error", err)
		return nil, err
	}

	expenses, payments, err := s.groupLedger(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances := calculator.GroupNetBalances(group.MemberIDs(), expenses, payments)
	balanceComputations.WithLabelValues("group").Inc()

	slog.Debug("Group balances computed",
		"group_id", groupID,
		"members_count", len(balances),
	)
	return balances, nil
}

// GroupSettlements suggests settlement transactions that would zero out a
// group's balances. The suggestions are never persisted; recording an actual
// payment is a separate action.
func (s *BalanceService) GroupSettlements(ctx context.Context, groupID string) ([]calculator.SettlementTransaction, error) {
	balances, err := s.GroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	transactions := calculator.SimplifyDebts(balances)
	slog.Debug("Group settlements computed",
		"group_id", groupID,
		"transactions_count", len(transactions),
	)
	return transactions, nil
}

// groupLedger reads one group's snapshot: all of its expenses plus its
// completed payments.
func (s *BalanceService) groupLedger(ctx context.Context, groupID string) ([]calculator.ExpenseForBalance, []calculator.PaymentForBalance, error) {
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		slog.Error("groupLedger: failed to list expenses", "group_id", groupID, "error", err)
		return nil, nil, err
	}
	payments, err := s.store.ListPaymentsByGroup(ctx, groupID)
	if err != nil {
		slog.Error("groupLedger: failed to list payments", "group_id", groupID, "error", err)
		return nil, nil, err
	}

	completed := payments[:0:0]
	for _, payment := range payments {
		if payment.Status == models.PaymentCompleted {
			completed = append(completed, payment)
		}
	}
	return expensesForBalance(expenses), paymentsForBalance(completed), nil
}

// expensesForBalance converts persisted expenses to the engine's input type.
func expensesForBalance(expenses []*models.Expense) []calculator.ExpenseForBalance {
	result := make([]calculator.ExpenseForBalance, len(expenses))
	for i, expense := range expenses {
		splits := make([]calculator.SplitShare, len(expense.Splits))
		for j, split := range expense.Splits {
			splits[j] = calculator.SplitShare{
				UserID: split.UserID,
				Amount: split.Amount,
				Paid:   split.Paid,
			}
		}
		result[i] = calculator.ExpenseForBalance{
			PayerID: expense.PayerID,
			Amount:  expense.Amount,
			Splits:  splits,
		}
	}
	return result
}

// paymentsForBalance converts completed payments to the engine's input type.
func paymentsForBalance(payments []*models.Payment) []calculator.PaymentForBalance {
	result := make([]calculator.PaymentForBalance, len(payments))
	for i, payment := range payments {
		result[i] = calculator.PaymentForBalance{
			FromUserID: payment.FromUserID,
			ToUserID:   payment.ToUserID,
			Amount:     payment.Amount,
		}
	}
	return result
}
