// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/smartsplit/backend/internal/models"
)

// Store defines the interface for user, group and expense persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Lookup misses are reported as *models.NotFoundError. Constraint violations
// map to the domain sentinels (models.ErrDuplicateName, models.ErrAlreadyMember).
type Store interface {
	// CreateUser persists a new user. The user's ID and timestamps are
	// populated by the store if unset.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves a user by their email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByVerificationToken retrieves the user holding the given
	// account-verification or password-reset token.
	GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error)

	// UpdateUser replaces the stored user row with the given value.
	UpdateUser(ctx context.Context, user *models.User) error

	// CreateGroup persists a new group and inserts the admin into the
	// member set in the same transaction. Returns models.ErrDuplicateName
	// if the name is taken.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID with its member set loaded.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// RenameGroup changes the group's display name.
	RenameGroup(ctx context.Context, groupID, name string) error

	// DeleteGroup removes the group, its memberships and all its expenses.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddGroupMember links the user to the group. The membership table is
	// the single source of truth for both the group→members and
	// user→groups views. Returns models.ErrAlreadyMember if already linked.
	AddGroupMember(ctx context.Context, groupID, userID string) error

	// RemoveGroupMember removes the link symmetrically.
	RemoveGroupMember(ctx context.Context, groupID, userID string) error

	// ListGroupsForUser returns every group the user is a member of,
	// with member sets loaded.
	ListGroupsForUser(ctx context.Context, userID string) ([]models.Group, error)

	// CreateExpense persists an expense together with its full split set
	// in one transaction.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID with its split set loaded.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// UpdateExpense replaces the expense row and its entire split set.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes the expense and its splits permanently.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListExpensesByGroup returns the group's expenses in creation order.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
