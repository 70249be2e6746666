// Package calculator implements the balance and debt-simplification engine.
//
// Everything in this package is a pure function over an immutable snapshot of
// expense and payment records: no I/O, no locks, no mutation of inputs. Each
// request recomputes from scratch, so results are always reproducible from the
// same snapshot.
package calculator

import "math"

// Epsilon is the tolerance below which a balance is treated as settled.
// It absorbs floating-point drift everywhere: near-zero balances are dropped
// from accumulation, excluded from categorization, and never produce
// settlement transactions.
const Epsilon = 0.01

// SplitShare is one user's share of an expense, as the engine sees it.
type SplitShare struct {
	UserID string
	Amount float64
	Paid   bool
}

// ExpenseForBalance carries the minimal expense fields needed for balance
// calculations, decoupled from the persisted model.
type ExpenseForBalance struct {
	PayerID string
	Amount  float64
	Splits  []SplitShare
}

// PaymentForBalance is a completed payment between two users. Callers must
// filter out pending and failed payments, and must never pass a self-payment;
// neither is validated here.
type PaymentForBalance struct {
	FromUserID string
	ToUserID   string
	Amount     float64
}

// MemberBalance is one member's netted position within a group scope.
type MemberBalance struct {
	// UserID identifies the member.
	UserID string

	// TotalPaid is what the member covered for others: their payouts on
	// unpaid shares of expenses they fronted, plus payments they sent.
	TotalPaid float64

	// TotalOwed is what the member consumed: their own unpaid shares of
	// expenses others fronted, plus payments they received.
	TotalOwed float64

	// NetBalance = TotalPaid - TotalOwed.
	// Positive = is owed money, negative = owes money.
	NetBalance float64
}

// AccumulateUserBalances folds expenses and completed payments into a signed
// per-counterparty balance map from the viewer's perspective.
// Positive = they owe the viewer, negative = the viewer owes them.
//
// Rules:
//   - Viewer paid the expense: every other user's unpaid split is added to
//     that user's entry.
//   - Someone else paid: the viewer's own unpaid split is subtracted from the
//     payer's entry. No split for the viewer means nothing is owed.
//   - Splits already marked paid are skipped; the paid flag is a settlement
//     side-channel independent of the payment ledger, and both are honored.
//   - A completed payment sent by the viewer adds to the counterparty's entry
//     (an over-payment flips the sign rather than being rejected); a payment
//     received subtracts.
//
// Entries within Epsilon of zero are dropped so floating noise never shows up
// as a phantom debt. Map accumulation is commutative, so input order does not
// affect the result.
func AccumulateUserBalances(expenses []ExpenseForBalance, payments []PaymentForBalance, viewerID string) map[string]float64 {
	balances := make(map[string]float64)

	for _, expense := range expenses {
		// Skip expenses without a payer (can't attribute the debt)
		if expense.PayerID == "" {
			continue
		}

		if expense.PayerID == viewerID {
			for _, split := range expense.Splits {
				if split.UserID == viewerID || split.Paid {
					continue
				}
				balances[split.UserID] += split.Amount
			}
			continue
		}

		for _, split := range expense.Splits {
			if split.UserID != viewerID || split.Paid {
				continue
			}
			balances[expense.PayerID] -= split.Amount
		}
	}

	for _, payment := range payments {
		switch viewerID {
		case payment.FromUserID:
			balances[payment.ToUserID] += payment.Amount
		case payment.ToUserID:
			balances[payment.FromUserID] -= payment.Amount
		}
	}

	for userID, amount := range balances {
		if math.Abs(amount) < Epsilon {
			delete(balances, userID)
		}
	}

	return balances
}

// GroupNetBalances applies the same accumulation rules across one group's
// ledger, producing every member's netted position. This is the canonical
// per-group algorithm; it feeds SimplifyDebts directly.
//
// Every listed member appears in the output, zero balance included, in member
// order; users that appear only in the ledger are appended in first-seen
// order. If every expense and payment involves only the given members, the
// net balances sum to zero within Epsilon.
func GroupNetBalances(memberIDs []string, expenses []ExpenseForBalance, payments []PaymentForBalance) []MemberBalance {
	balances := make(map[string]*MemberBalance, len(memberIDs))
	order := make([]string, 0, len(memberIDs))

	member := func(userID string) *MemberBalance {
		if b, ok := balances[userID]; ok {
			return b
		}
		b := &MemberBalance{UserID: userID}
		balances[userID] = b
		order = append(order, userID)
		return b
	}

	for _, id := range memberIDs {
		member(id)
	}

	for _, expense := range expenses {
		if expense.PayerID == "" {
			continue
		}
		payer := member(expense.PayerID)
		for _, split := range expense.Splits {
			// The payer's own split is a wash either way
			if split.UserID == expense.PayerID || split.Paid {
				continue
			}
			payer.TotalPaid += split.Amount
			member(split.UserID).TotalOwed += split.Amount
		}
	}

	for _, payment := range payments {
		member(payment.FromUserID).TotalPaid += payment.Amount
		member(payment.ToUserID).TotalOwed += payment.Amount
	}

	result := make([]MemberBalance, 0, len(order))
	for _, userID := range order {
		b := balances[userID]
		b.NetBalance = b.TotalPaid - b.TotalOwed
		result = append(result, *b)
	}
	return result
}
