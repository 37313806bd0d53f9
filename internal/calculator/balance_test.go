package calculator

import (
	"math"
	"testing"

	"github.com/smartsplit/backend/internal/models"
)

func TestMemberBalance(t *testing.T) {
	// Group {alice, bob, charlie}; alice pays 90 split evenly.
	evenSplit := models.Expense{
		ID:      "e1",
		GroupID: "g1",
		Amount:  90.0,
		PayerID: "alice",
		Splits:  map[string]float64{"alice": 30, "bob": 30, "charlie": 30},
	}

	tests := []struct {
		name     string
		userID   string
		expenses []models.Expense
		want     float64
	}{
		{
			name:     "payer nets share minus amount",
			userID:   "alice",
			expenses: []models.Expense{evenSplit},
			want:     -60.0, // 30 - 90
		},
		{
			name:     "non-payer owes exactly their share",
			userID:   "bob",
			expenses: []models.Expense{evenSplit},
			want:     30.0,
		},
		{
			name:   "user absent from splits and payer contributes nothing",
			userID: "diana",
			expenses: []models.Expense{
				evenSplit,
				{ID: "e2", GroupID: "g1", Amount: 12, PayerID: "bob", Splits: map[string]float64{"bob": 6, "charlie": 6}},
			},
			want: 0,
		},
		{
			name:     "empty ledger nets zero",
			userID:   "alice",
			expenses: nil,
			want:     0,
		},
		{
			name:   "balances accumulate across expenses",
			userID: "bob",
			expenses: []models.Expense{
				evenSplit,
				{ID: "e2", GroupID: "g1", Amount: 12, PayerID: "bob", Splits: map[string]float64{"bob": 6, "charlie": 6}},
			},
			want: 24.0, // 30 + 6 - 12
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MemberBalance(tt.userID, tt.expenses)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("MemberBalance(%s) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}
}

// TestBalanceScenario walks one expense through create, update and delete and
// checks the resulting balances at each step.
func TestBalanceScenario(t *testing.T) {
	members := users("alice", "bob", "charlie")

	// alice pays 90, split evenly with no selection.
	expense := models.Expense{
		ID:      "e1",
		GroupID: "g1",
		Amount:  90.0,
		PayerID: "alice",
		Splits:  map[string]float64{"alice": 30, "bob": 30, "charlie": 30},
	}
	ledger := []models.Expense{expense}

	balances := GroupBalances(members, ledger)
	assertBalance(t, balances, "alice", -60.0)
	assertBalance(t, balances, "bob", 30.0)
	assertBalance(t, balances, "charlie", 30.0)

	// Update: same amount, new payer and a wholesale split replacement.
	expense.PayerID = "bob"
	expense.Splits = map[string]float64{"alice": 50, "bob": 20, "charlie": 20}
	ledger[0] = expense

	balances = GroupBalances(members, ledger)
	assertBalance(t, balances, "alice", 50.0)
	assertBalance(t, balances, "bob", -70.0) // 20 - 90
	assertBalance(t, balances, "charlie", 20.0)

	// Delete: everyone returns to zero.
	balances = GroupBalances(members, nil)
	for _, m := range members {
		assertBalance(t, balances, m.ID, 0)
	}
}

func TestGroupBalancesIncludesDepartedUsers(t *testing.T) {
	// diana left the group but still appears in an old split; eve left after
	// paying. Both must still show up in the group view.
	members := users("alice")
	ledger := []models.Expense{
		{ID: "e1", GroupID: "g1", Amount: 20, PayerID: "eve", Splits: map[string]float64{"alice": 10, "diana": 10}},
	}

	balances := GroupBalances(members, ledger)
	assertBalance(t, balances, "alice", 10.0)
	assertBalance(t, balances, "diana", 10.0)
	assertBalance(t, balances, "eve", -20.0)
}

func assertBalance(t *testing.T, balances map[string]float64, userID string, want float64) {
	t.Helper()
	got, ok := balances[userID]
	if !ok {
		t.Fatalf("no balance entry for %s", userID)
	}
	if math.Abs(got-want) > 0.01 {
		t.Errorf("balance[%s] = %v, want %v", userID, got, want)
	}
}
