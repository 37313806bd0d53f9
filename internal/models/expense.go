package models

// Expense represents a single recorded cost owned by a group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group the expense belongs to.
	GroupID string

	// Description is the human-readable label for the expense.
	Description string

	// Amount is the full cost paid by the payer.
	Amount float64

	// PayerID is the user who paid the expense. The payer must have been a
	// group member when the expense was created but may leave afterwards.
	PayerID string

	// Splits maps user ID to that user's allocated share. The map is a
	// snapshot of the group membership at creation time: every member at
	// that moment has an entry, including explicit zero entries for members
	// excluded from the split. Updates replace the whole map.
	Splits map[string]float64

	// CreatedAt is the Unix timestamp when the expense was recorded.
	// Expenses are listed in creation order.
	CreatedAt int64
}
