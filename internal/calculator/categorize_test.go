package calculator

import (
	"math"
	"testing"
)

func TestCategorizeBalances(t *testing.T) {
	tests := []struct {
		name     string
		balances map[string]float64
		validate func(t *testing.T, summary *BalanceSummary)
	}{
		{
			name:     "empty map yields empty summary",
			balances: map[string]float64{},
			validate: func(t *testing.T, summary *BalanceSummary) {
				if len(summary.UsersYouOwe) != 0 || len(summary.UsersWhoOweYou) != 0 {
					t.Errorf("expected empty lists, got %+v", summary)
				}
				if summary.NetBalance != 0 {
					t.Errorf("net = %v, want 0", summary.NetBalance)
				}
			},
		},
		{
			name:     "signs route entries to the right list",
			balances: map[string]float64{"B": 30, "C": -12.5, "D": 7.5},
			validate: func(t *testing.T, summary *BalanceSummary) {
				if len(summary.UsersWhoOweYou) != 2 || len(summary.UsersYouOwe) != 1 {
					t.Fatalf("list sizes = %d/%d, want 2/1", len(summary.UsersWhoOweYou), len(summary.UsersYouOwe))
				}
				if summary.UsersYouOwe[0].UserID != "C" || summary.UsersYouOwe[0].Amount != 12.5 {
					t.Errorf("UsersYouOwe[0] = %+v, want {C 12.5}", summary.UsersYouOwe[0])
				}
				if math.Abs(summary.TotalOwed-12.5) > 0.001 {
					t.Errorf("TotalOwed = %v, want 12.5", summary.TotalOwed)
				}
				if math.Abs(summary.TotalOwedToYou-37.5) > 0.001 {
					t.Errorf("TotalOwedToYou = %v, want 37.5", summary.TotalOwedToYou)
				}
				if math.Abs(summary.NetBalance-25) > 0.001 {
					t.Errorf("NetBalance = %v, want 25", summary.NetBalance)
				}
			},
		},
		{
			name:     "lists sorted descending by amount",
			balances: map[string]float64{"B": 5, "C": 50, "D": 20},
			validate: func(t *testing.T, summary *BalanceSummary) {
				order := []string{"C", "D", "B"}
				for i, want := range order {
					if summary.UsersWhoOweYou[i].UserID != want {
						t.Errorf("UsersWhoOweYou[%d] = %s, want %s", i, summary.UsersWhoOweYou[i].UserID, want)
					}
				}
			},
		},
		{
			name:     "equal amounts tie-break by user id ascending",
			balances: map[string]float64{"D": 10, "B": 10, "C": 10},
			validate: func(t *testing.T, summary *BalanceSummary) {
				order := []string{"B", "C", "D"}
				for i, want := range order {
					if summary.UsersWhoOweYou[i].UserID != want {
						t.Errorf("UsersWhoOweYou[%d] = %s, want %s", i, summary.UsersWhoOweYou[i].UserID, want)
					}
				}
			},
		},
		{
			name:     "near-zero entries excluded as settled",
			balances: map[string]float64{"B": 0.0049999, "C": -0.002, "D": 4},
			validate: func(t *testing.T, summary *BalanceSummary) {
				if len(summary.UsersYouOwe) != 0 {
					t.Errorf("UsersYouOwe = %+v, want empty", summary.UsersYouOwe)
				}
				if len(summary.UsersWhoOweYou) != 1 || summary.UsersWhoOweYou[0].UserID != "D" {
					t.Errorf("UsersWhoOweYou = %+v, want only D", summary.UsersWhoOweYou)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, CategorizeBalances(tt.balances))
		})
	}
}

// NetBalance must equal the signed sum of the raw map regardless of shape.
func TestCategorizeConservation(t *testing.T) {
	balances := map[string]float64{"B": 33.33, "C": -12.12, "D": 0.5, "E": -40}

	rawSum := 0.0
	for _, amount := range balances {
		rawSum += amount
	}

	summary := CategorizeBalances(balances)
	if math.Abs(summary.NetBalance-rawSum) > Epsilon {
		t.Errorf("NetBalance = %v, raw sum = %v", summary.NetBalance, rawSum)
	}
}

func TestComputeUserBalances(t *testing.T) {
	// A pays 90 split equally among A, B, C; then B settles 30.
	expenses := []ExpenseForBalance{dinner90()}

	summary := ComputeUserBalances("A", expenses, nil)
	if len(summary.UsersWhoOweYou) != 2 {
		t.Fatalf("UsersWhoOweYou = %+v, want B and C", summary.UsersWhoOweYou)
	}
	if summary.UsersWhoOweYou[0].UserID != "B" || summary.UsersWhoOweYou[1].UserID != "C" {
		t.Errorf("order = %s, %s; want B, C", summary.UsersWhoOweYou[0].UserID, summary.UsersWhoOweYou[1].UserID)
	}
	if math.Abs(summary.NetBalance-60) > 0.001 {
		t.Errorf("NetBalance = %v, want 60", summary.NetBalance)
	}

	payments := []PaymentForBalance{{FromUserID: "B", ToUserID: "A", Amount: 30}}
	summary = ComputeUserBalances("A", expenses, payments)
	if len(summary.UsersWhoOweYou) != 1 || summary.UsersWhoOweYou[0].UserID != "C" {
		t.Fatalf("after settlement UsersWhoOweYou = %+v, want only C", summary.UsersWhoOweYou)
	}
	if math.Abs(summary.NetBalance-30) > 0.001 {
		t.Errorf("NetBalance after settlement = %v, want 30", summary.NetBalance)
	}
}
