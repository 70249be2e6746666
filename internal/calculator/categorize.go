package calculator

import (
	"math"
	"sort"
)

// UserAmount is a counterparty and an absolute amount.
type UserAmount struct {
	UserID string
	Amount float64
}

// BalanceSummary is a single user's categorized balance view.
type BalanceSummary struct {
	// UsersYouOwe lists counterparties the viewer owes, largest first.
	UsersYouOwe []UserAmount

	// UsersWhoOweYou lists counterparties that owe the viewer, largest first.
	UsersWhoOweYou []UserAmount

	// TotalOwed is the sum over UsersYouOwe.
	TotalOwed float64

	// TotalOwedToYou is the sum over UsersWhoOweYou.
	TotalOwedToYou float64

	// NetBalance = TotalOwedToYou - TotalOwed, which equals the signed sum
	// of the underlying balance map.
	NetBalance float64
}

// CategorizeBalances splits a signed balance map into "you owe" and "owes you"
// lists with aggregate totals. Entries within Epsilon of zero are treated as
// settled and excluded. Both lists are sorted by amount descending; equal
// amounts are ordered by user ID ascending so results are deterministic.
func CategorizeBalances(balances map[string]float64) *BalanceSummary {
	summary := &BalanceSummary{}

	for userID, amount := range balances {
		switch {
		case math.Abs(amount) < Epsilon:
			// settled
		case amount < 0:
			summary.UsersYouOwe = append(summary.UsersYouOwe, UserAmount{UserID: userID, Amount: -amount})
			summary.TotalOwed += -amount
		default:
			summary.UsersWhoOweYou = append(summary.UsersWhoOweYou, UserAmount{UserID: userID, Amount: amount})
			summary.TotalOwedToYou += amount
		}
	}

	sortByAmountDesc(summary.UsersYouOwe)
	sortByAmountDesc(summary.UsersWhoOweYou)

	summary.NetBalance = summary.TotalOwedToYou - summary.TotalOwed
	return summary
}

// ComputeUserBalances is the engine's global-view operation: accumulate the
// viewer's ledger, then categorize it.
func ComputeUserBalances(viewerID string, expenses []ExpenseForBalance, payments []PaymentForBalance) *BalanceSummary {
	return CategorizeBalances(AccumulateUserBalances(expenses, payments, viewerID))
}

func sortByAmountDesc(entries []UserAmount) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Amount != entries[j].Amount {
			return entries[i].Amount > entries[j].Amount
		}
		return entries[i].UserID < entries[j].UserID
	})
}
