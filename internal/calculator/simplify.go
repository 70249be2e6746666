package calculator

import (
	"math"
	"sort"
)

// SettlementTransaction is a suggested payment that would help zero out a
// group's balances. It is never persisted as a debt record; recording an
// actual Payment is a separate, caller-side action.
type SettlementTransaction struct {
	From   string
	To     string
	Amount float64
}

// stake is one side's remaining position during the greedy sweep.
type stake struct {
	userID    string
	remaining float64
}

// SimplifyDebts reduces a group's net balances to an ordered list of
// settlement transactions using greedy largest-creditor/largest-debtor
// matching. O(n log n): both sides are sorted once, then consumed with a
// two-pointer sweep rather than re-sorted each round.
//
// The input is assumed to sum to (approximately) zero; that holds whenever
// every expense and payment in scope involves only members of that scope.
// If the precondition is violated, the sweep simply stops when one side
// empties, leaving the residual balance unresolved rather than inventing an
// incorrect transaction. Callers detect drift by re-checking sums.
//
// This is a fast heuristic, not a minimum-transaction-count solver: applying
// every emitted transaction drives each zero-sum balance to within Epsilon of
// zero, but the list is not guaranteed to be the shortest possible.
func SimplifyDebts(members []MemberBalance) []SettlementTransaction {
	var creditors, debtors []stake
	for _, m := range members {
		switch {
		case m.NetBalance > Epsilon:
			creditors = append(creditors, stake{userID: m.UserID, remaining: m.NetBalance})
		case m.NetBalance < -Epsilon:
			debtors = append(debtors, stake{userID: m.UserID, remaining: -m.NetBalance})
		}
	}

	// Largest magnitude first; equal magnitudes by user ID for determinism
	sortStakesDesc(creditors)
	sortStakesDesc(debtors)

	var transactions []SettlementTransaction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := math.Min(debtor.remaining, creditor.remaining)
		if amount > Epsilon {
			transactions = append(transactions, SettlementTransaction{
				From:   debtor.userID,
				To:     creditor.userID,
				Amount: amount,
			})
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining < Epsilon {
			i++
		}
		if creditor.remaining < Epsilon {
			j++
		}
	}

	return transactions
}

func sortStakesDesc(stakes []stake) {
	sort.Slice(stakes, func(i, j int) bool {
		if stakes[i].remaining != stakes[j].remaining {
			return stakes[i].remaining > stakes[j].remaining
		}
		return stakes[i].userID < stakes[j].userID
	})
}
