package service

import (
	"context"
	"log/slog"

	"github.com/smartsplit/backend/internal/calculator"
	"github.com/smartsplit/backend/internal/models"
	"github.com/smartsplit/backend/internal/storage"
)

// ExpenseService implements the expense ledger: create, update, delete and
// list, with the split allocation on create.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpense records a new expense in the group. The split set is
// computed from the group's membership as observed during this call and
// stored as an immutable snapshot: members joining or leaving later never
// change it.
//
// With an empty selection the amount is divided evenly across all current
// members. With a selection, only the selected users carry a share and every
// other member gets an explicit zero entry.
func (s *ExpenseService) CreateExpense(ctx context.Context, groupID, payerID string, amount float64, description string, selectedMemberIDs []string) (*models.Expense, error) {
	slog.Info("CreateExpense request received",
		"group_id", groupID,
		"payer_id", payerID,
		"amount", amount,
		"selected_count", len(selectedMemberIDs),
	)

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	payer, err := s.store.GetUser(ctx, payerID)
	if err != nil {
		return nil, err
	}

	selected, err := s.resolveSelection(ctx, selectedMemberIDs)
	if err != nil {
		return nil, err
	}

	splits, err := calculator.Allocate(amount, group.Members, selected)
	if err != nil {
		slog.Error("CreateExpense allocation failed", "group_id", groupID, "error", err)
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		Description: description,
		Amount:      amount,
		PayerID:     payer.ID,
		Splits:      splits,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Expense created", "expense_id", expense.ID, "group_id", groupID)

	return expense, nil
}

// resolveSelection loads the selected users. A selection where nothing
// resolves is a harder failure than a single missing ID: the former means
// the split has no usable members at all.
func (s *ExpenseService) resolveSelection(ctx context.Context, selectedMemberIDs []string) ([]models.User, error) {
	if len(selectedMemberIDs) == 0 {
		return nil, nil
	}

	var selected []models.User
	var missErr error
	for _, id := range selectedMemberIDs {
		user, err := s.store.GetUser(ctx, id)
		if err != nil {
			if models.IsNotFound(err) {
				if missErr == nil {
					missErr = err
				}
				continue
			}
			return nil, err
		}
		selected = append(selected, *user)
	}

	if len(selected) == 0 {
		return nil, models.ErrInvalidSplitSelection
	}
	if missErr != nil {
		return nil, missErr
	}
	return selected, nil
}

// UpdateExpense replaces the expense's description, amount, payer and its
// entire split set. The supplied split map is substituted wholesale; it is
// the caller's responsibility that it covers the intended members and sums
// to the amount — neither is validated, matching the create-time snapshot
// being a caller-owned value object here.
func (s *ExpenseService) UpdateExpense(ctx context.Context, groupID, expenseID, description string, amount float64, payerID string, splits map[string]float64) (*models.Expense, error) {
	slog.Info("UpdateExpense request received",
		"group_id", groupID,
		"expense_id", expenseID,
		"amount", amount,
	)

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.GroupID != groupID {
		return nil, models.ErrExpenseGroupMismatch
	}

	// Every user named in the replacement split must exist.
	for userID := range splits {
		if _, err := s.store.GetUser(ctx, userID); err != nil {
			return nil, err
		}
	}

	payer, err := s.store.GetUser(ctx, payerID)
	if err != nil {
		return nil, err
	}

	expense.Description = description
	expense.Amount = amount
	expense.PayerID = payer.ID
	expense.Splits = splits

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expenseID, "error", err)
		return nil, err
	}

	slog.Info("Expense updated", "expense_id", expenseID, "group_id", groupID)

	return expense, nil
}

// DeleteExpense removes the expense permanently. Balances need no
// compensation: they are recomputed from the ledger, so the deletion simply
// drops out of the next scan.
func (s *ExpenseService) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	slog.Info("DeleteExpense request received", "group_id", groupID, "expense_id", expenseID)

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.GroupID != groupID {
		return models.ErrExpenseGroupMismatch
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expenseID, "error", err)
		return err
	}

	slog.Info("Expense deleted", "expense_id", expenseID, "group_id", groupID)
	return nil
}

// ListExpenses returns the group's expenses in creation order.
func (s *ExpenseService) ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}
