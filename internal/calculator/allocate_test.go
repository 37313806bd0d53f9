package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/smartsplit/backend/internal/models"
)

func users(ids ...string) []models.User {
	out := make([]models.User, len(ids))
	for i, id := range ids {
		out[i] = models.User{ID: id}
	}
	return out
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name         string
		amount       float64
		members      []models.User
		selected     []models.User
		wantErr      error
		validateFunc func(t *testing.T, splits map[string]float64)
	}{
		{
			name:    "equal split across all members",
			amount:  90.0,
			members: users("alice", "bob", "charlie"),
			validateFunc: func(t *testing.T, splits map[string]float64) {
				if len(splits) != 3 {
					t.Fatalf("splits size = %d, want 3", len(splits))
				}
				for _, id := range []string{"alice", "bob", "charlie"} {
					if math.Abs(splits[id]-30.0) > 0.01 {
						t.Errorf("%s share = %v, want 30.0", id, splits[id])
					}
				}
			},
		},
		{
			name:     "selected split gives zero entries to the rest",
			amount:   40.0,
			members:  users("alice", "bob", "charlie", "diana"),
			selected: users("alice", "bob"),
			validateFunc: func(t *testing.T, splits map[string]float64) {
				if len(splits) != 4 {
					t.Fatalf("splits size = %d, want 4 (zero entries included)", len(splits))
				}
				for _, id := range []string{"alice", "bob"} {
					if math.Abs(splits[id]-20.0) > 0.01 {
						t.Errorf("%s share = %v, want 20.0", id, splits[id])
					}
				}
				for _, id := range []string{"charlie", "diana"} {
					share, ok := splits[id]
					if !ok {
						t.Errorf("%s missing from splits, want explicit zero entry", id)
					}
					if share != 0 {
						t.Errorf("%s share = %v, want 0", id, share)
					}
				}
			},
		},
		{
			name:     "selected user outside the member set still gets a share",
			amount:   30.0,
			members:  users("alice", "bob"),
			selected: users("charlie"),
			validateFunc: func(t *testing.T, splits map[string]float64) {
				if math.Abs(splits["charlie"]-30.0) > 0.01 {
					t.Errorf("charlie share = %v, want 30.0", splits["charlie"])
				}
				if splits["alice"] != 0 || splits["bob"] != 0 {
					t.Errorf("non-selected members = %v/%v, want 0/0", splits["alice"], splits["bob"])
				}
			},
		},
		{
			name:    "zero members fails instead of dividing by zero",
			amount:  10.0,
			members: nil,
			wantErr: models.ErrInvalidSplitSelection,
		},
		{
			name:    "rounding loss is kept, not redistributed",
			amount:  10.0,
			members: users("alice", "bob", "charlie"),
			validateFunc: func(t *testing.T, splits map[string]float64) {
				want := 10.0 / 3.0
				var sum float64
				for id, share := range splits {
					if share != want {
						t.Errorf("%s share = %v, want the literal quotient %v", id, share, want)
					}
					sum += share
				}
				// The shares may not sum back to the amount exactly; the
				// error must only be bounded, never "fixed" by the allocator.
				if math.Abs(sum-10.0) > 1e-9 {
					t.Errorf("sum of shares = %v, drift from 10.0 exceeds epsilon", sum)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := Allocate(tt.amount, tt.members, tt.selected)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Allocate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Allocate() error = %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, splits)
			}
		})
	}
}
