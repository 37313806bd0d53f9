// Package calculator implements the split-allocation and balance rules.
// Everything here is a pure function over domain values; persistence and
// transport never leak in.
package calculator

import "github.com/smartsplit/backend/internal/models"

// Allocate divides an expense amount across group members and returns the
// split set as a map from user ID to share.
//
// With no selection, the amount is divided evenly across every current
// member. With a selection, the amount is divided evenly across the selected
// users only, and every non-selected member still gets an explicit zero
// entry so the split set always covers the full membership snapshot.
//
// Division is plain float64 division with no remainder redistribution; when
// amount/n is not exactly representable the literal quotient is stored, so
// the shares may not sum back to amount exactly.
//
// Returns models.ErrInvalidSplitSelection instead of dividing by zero when
// the group has no members (equal split) or the selection is empty.
func Allocate(amount float64, members []models.User, selected []models.User) (map[string]float64, error) {
	splits := make(map[string]float64, len(members))

	if len(selected) == 0 {
		if len(members) == 0 {
			return nil, models.ErrInvalidSplitSelection
		}
		share := amount / float64(len(members))
		for _, m := range members {
			splits[m.ID] = share
		}
		return splits, nil
	}

	share := amount / float64(len(selected))
	for _, m := range selected {
		splits[m.ID] = share
	}
	for _, m := range members {
		if _, ok := splits[m.ID]; !ok {
			splits[m.ID] = 0
		}
	}
	return splits, nil
}
