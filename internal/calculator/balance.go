package calculator

import "github.com/smartsplit/backend/internal/models"

// MemberBalance computes one user's net position across a group's expenses.
//
// net = Σ(user's share in each split) − Σ(amount of each expense the user paid).
// Positive means the user owes the group net; negative means the user is
// owed. The sign convention is load-bearing for every consumer.
//
// The result is a pure function of the expense ledger passed in: nothing is
// cached, so a call after a ledger mutation always reflects the latest state.
func MemberBalance(userID string, expenses []models.Expense) float64 {
	var net float64
	for _, expense := range expenses {
		if share, ok := expense.Splits[userID]; ok {
			net += share
		}
		if expense.PayerID == userID {
			net -= expense.Amount
		}
	}
	return net
}

// GroupBalances computes the net balance for every member of the group, plus
// any user who still appears in a split or as a payer after leaving.
func GroupBalances(members []models.User, expenses []models.Expense) map[string]float64 {
	balances := make(map[string]float64, len(members))
	for _, m := range members {
		balances[m.ID] = MemberBalance(m.ID, expenses)
	}
	for _, expense := range expenses {
		for userID := range expense.Splits {
			if _, ok := balances[userID]; !ok {
				balances[userID] = MemberBalance(userID, expenses)
			}
		}
		if _, ok := balances[expense.PayerID]; !ok {
			balances[expense.PayerID] = MemberBalance(expense.PayerID, expenses)
		}
	}
	return balances
}
