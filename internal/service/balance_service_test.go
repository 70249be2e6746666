package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/PrAyAg9/diivido-sub000/internal/models"
	"github.com/PrAyAg9/diivido-sub000/internal/storage"
	"github.com/PrAyAg9/diivido-sub000/internal/storage/sqlite"
)

// services bundles everything under test over one temp SQLite store.
type services struct {
	groups   *GroupService
	expenses *ExpenseService
	payments *PaymentService
	balances *BalanceService
}

func setupServices(t *testing.T) *services {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "divido-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &services{
		groups:   NewGroupService(store),
		expenses: NewExpenseService(store),
		payments: NewPaymentService(store),
		balances: NewBalanceService(store, 50),
	}
}

// seedGroup creates a three-member group with one 90 expense paid by alice,
// split equally, alice's own share marked paid.
func seedGroup(t *testing.T, svc *services) *models.Group {
	t.Helper()
	ctx := context.Background()

	group := &models.Group{
		Name: "Roommates",
		Members: []models.Member{
			{UserID: "alice", Role: models.RoleAdmin},
			{UserID: "bob"},
			{UserID: "carol"},
		},
	}
	if err := svc.groups.Create(ctx, group); err != nil {
		t.Fatalf("Create group failed: %v", err)
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		PayerID:     "alice",
		Description: "Dinner",
		Amount:      90,
		Splits: []models.Split{
			{UserID: "alice", Amount: 30, Paid: true},
			{UserID: "bob", Amount: 30},
			{UserID: "carol", Amount: 30},
		},
	}
	if err := svc.expenses.Create(ctx, expense, nil); err != nil {
		t.Fatalf("Create expense failed: %v", err)
	}
	return group
}

// completedPayment records a payment and completes it.
func completedPayment(t *testing.T, svc *services, groupID, from, to string, amount float64) {
	t.Helper()
	ctx := context.Background()

	payment := &models.Payment{GroupID: groupID, FromUserID: from, ToUserID: to, Amount: amount}
	if err := svc.payments.Record(ctx, payment); err != nil {
		t.Fatalf("Record payment failed: %v", err)
	}
	if _, err := svc.payments.Complete(ctx, payment.ID); err != nil {
		t.Fatalf("Complete payment failed: %v", err)
	}
}

func TestUserBalances(t *testing.T) {
	svc := setupServices(t)
	group := seedGroup(t, svc)
	ctx := context.Background()

	summary, err := svc.balances.UserBalances(ctx, "alice")
	if err != nil {
		t.Fatalf("UserBalances failed: %v", err)
	}
	if len(summary.UsersWhoOweYou) != 2 {
		t.Fatalf("UsersWhoOweYou = %+v, want bob and carol", summary.UsersWhoOweYou)
	}
	if math.Abs(summary.NetBalance-60) > 0.001 {
		t.Errorf("NetBalance = %v, want 60", summary.NetBalance)
	}

	// Bob settles his share; only pending payments must not count yet.
	payment := &models.Payment{GroupID: group.ID, FromUserID: "bob", ToUserID: "alice", Amount: 30}
	if err := svc.payments.Record(ctx, payment); err != nil {
		t.Fatalf("Record payment failed: %v", err)
	}

	summary, err = svc.balances.UserBalances(ctx, "alice")
	if err != nil {
		t.Fatalf("UserBalances failed: %v", err)
	}
	if math.Abs(summary.NetBalance-60) > 0.001 {
		t.Errorf("pending payment changed NetBalance to %v", summary.NetBalance)
	}

	if _, err := svc.payments.Complete(ctx, payment.ID); err != nil {
		t.Fatalf("Complete payment failed: %v", err)
	}

	summary, err = svc.balances.UserBalances(ctx, "alice")
	if err != nil {
		t.Fatalf("UserBalances failed: %v", err)
	}
	if len(summary.UsersWhoOweYou) != 1 || summary.UsersWhoOweYou[0].UserID != "carol" {
		t.Fatalf("after settlement UsersWhoOweYou = %+v, want only carol", summary.UsersWhoOweYou)
	}
	if math.Abs(summary.NetBalance-30) > 0.001 {
		t.Errorf("NetBalance = %v, want 30", summary.NetBalance)
	}

	// Debtor's perspective mirrors the creditor's
	summary, err = svc.balances.UserBalances(ctx, "carol")
	if err != nil {
		t.Fatalf("UserBalances failed: %v", err)
	}
	if len(summary.UsersYouOwe) != 1 || summary.UsersYouOwe[0].UserID != "alice" {
		t.Fatalf("carol's UsersYouOwe = %+v, want alice", summary.UsersYouOwe)
	}
	if math.Abs(summary.NetBalance+30) > 0.001 {
		t.Errorf("carol's NetBalance = %v, want -30", summary.NetBalance)
	}
}

func TestMarkSplitPaidAffectsBalances(t *testing.T) {
	svc := setupServices(t)
	group := seedGroup(t, svc)
	ctx := context.Background()

	expenses, err := svc.expenses.ListByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if err := svc.expenses.MarkSplitPaid(ctx, expenses[0].ID, "bob", true); err != nil {
		t.Fatalf("MarkSplitPaid failed: %v", err)
	}

	summary, err := svc.balances.UserBalances(ctx, "alice")
	if err != nil {
		t.Fatalf("UserBalances failed: %v", err)
	}
	if len(summary.UsersWhoOweYou) != 1 || summary.UsersWhoOweYou[0].UserID != "carol" {
		t.Errorf("after paid flag UsersWhoOweYou = %+v, want only carol", summary.UsersWhoOweYou)
	}
}

func TestGroupBalancesAndSettlements(t *testing.T) {
	svc := setupServices(t)
	group := seedGroup(t, svc)
	ctx := context.Background()

	balances, err := svc.balances.GroupBalances(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupBalances failed: %v", err)
	}

	nets := make(map[string]float64, len(balances))
	sum := 0.0
	for _, member := range balances {
		nets[member.UserID] = member.NetBalance
		sum += member.NetBalance
	}
	if math.Abs(nets["alice"]-60) > 0.001 || math.Abs(nets["bob"]+30) > 0.001 || math.Abs(nets["carol"]+30) > 0.001 {
		t.Errorf("group nets = %v, want alice 60, bob -30, carol -30", nets)
	}
	if math.Abs(sum) > 0.01 {
		t.Errorf("group nets sum to %v, want ~0", sum)
	}

	transactions, err := svc.balances.GroupSettlements(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupSettlements failed: %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("got %d transactions (%+v), want 2", len(transactions), transactions)
	}
	for _, tx := range transactions {
		if tx.To != "alice" || math.Abs(tx.Amount-30) > 0.001 {
			t.Errorf("transaction = %+v, want 30 to alice", tx)
		}
	}

	// A completed payment shrinks the suggestion list
	completedPayment(t, svc, group.ID, "bob", "alice", 30)

	transactions, err = svc.balances.GroupSettlements(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupSettlements failed: %v", err)
	}
	if len(transactions) != 1 || transactions[0].From != "carol" {
		t.Errorf("after payment transactions = %+v, want only carol -> alice", transactions)
	}
}

// The global view restricted to one group's ledger must agree with that
// group's per-member net balances.
func TestGlobalViewMatchesGroupView(t *testing.T) {
	svc := setupServices(t)
	group := seedGroup(t, svc)
	ctx := context.Background()

	completedPayment(t, svc, group.ID, "carol", "alice", 12.5)

	balances, err := svc.balances.GroupBalances(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupBalances failed: %v", err)
	}
	for _, member := range balances {
		summary, err := svc.balances.UserBalances(ctx, member.UserID)
		if err != nil {
			t.Fatalf("UserBalances failed: %v", err)
		}
		if math.Abs(summary.NetBalance-member.NetBalance) > 0.01 {
			t.Errorf("user %s: global net %v, group net %v", member.UserID, summary.NetBalance, member.NetBalance)
		}
	}
}

func TestGroupBalancesEmptyGroup(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	group := &models.Group{Name: "Quiet", Members: []models.Member{{UserID: "x"}, {UserID: "y"}}}
	if err := svc.groups.Create(ctx, group); err != nil {
		t.Fatalf("Create group failed: %v", err)
	}

	balances, err := svc.balances.GroupBalances(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupBalances failed: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("got %d members, want 2 zero balances", len(balances))
	}
	for _, member := range balances {
		if member.NetBalance != 0 {
			t.Errorf("member %s net = %v, want 0", member.UserID, member.NetBalance)
		}
	}

	transactions, err := svc.balances.GroupSettlements(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupSettlements failed: %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("empty group produced transactions: %+v", transactions)
	}
}

func TestBalancesUnknownGroup(t *testing.T) {
	svc := setupServices(t)

	_, err := svc.balances.GroupBalances(context.Background(), "nonexistent-id")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
