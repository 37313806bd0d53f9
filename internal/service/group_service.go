// Package service implements the application operations on top of the store
// and the calculator. Services resolve entities, enforce the domain rules
// and return domain values; transport concerns stay in httpapi.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/smartsplit/backend/internal/calculator"
	"github.com/smartsplit/backend/internal/models"
	"github.com/smartsplit/backend/internal/storage"
)

// GroupService implements group administration, membership and balances.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group administered by adminID. The admin becomes
// a member as part of the same creation step.
func (s *GroupService) CreateGroup(ctx context.Context, name, adminID string) (*models.Group, error) {
	slog.Info("CreateGroup request received", "name", name, "admin_id", adminID)

	admin, err := s.store.GetUser(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve admin: %w", err)
	}

	group := &models.Group{
		Name:    name,
		AdminID: admin.ID,
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "name", name, "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "name", name)

	return s.store.GetGroup(ctx, group.ID)
}

// GetGroup retrieves a group by ID with its member set.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// AddMember adds the user to the group. Both sides of the association change
// together — never one without the other.
func (s *GroupService) AddMember(ctx context.Context, groupID, userID string) (*models.Group, error) {
	slog.Info("AddMember request received", "group_id", groupID, "user_id", userID)

	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.AddGroupMember(ctx, groupID, user.ID); err != nil {
		slog.Error("AddMember failed", "group_id", groupID, "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("Member added", "group_id", groupID, "user_id", userID)

	return s.store.GetGroup(ctx, groupID)
}

// RemoveMember removes the user from the group symmetrically. The admin is
// not special-cased: removing the admin is permitted and leaves the group's
// AdminID referencing a non-member until the admin is re-added.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, userID string) (*models.Group, error) {
	slog.Info("RemoveMember request received", "group_id", groupID, "user_id", userID)

	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.RemoveGroupMember(ctx, groupID, user.ID); err != nil {
		slog.Error("RemoveMember failed", "group_id", groupID, "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("Member removed", "group_id", groupID, "user_id", userID)

	return s.store.GetGroup(ctx, groupID)
}

// RenameGroup changes the group's display name.
func (s *GroupService) RenameGroup(ctx context.Context, groupID, newName string) (*models.Group, error) {
	slog.Info("RenameGroup request received", "group_id", groupID, "new_name", newName)

	if err := s.store.RenameGroup(ctx, groupID, newName); err != nil {
		return nil, err
	}

	return s.store.GetGroup(ctx, groupID)
}

// DeleteGroup removes the group and cascades to its expenses.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID string) error {
	slog.Info("DeleteGroup request received", "group_id", groupID)

	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return err
	}

	slog.Info("Group deleted", "group_id", groupID)
	return nil
}

// ListGroupsForUser returns every group the user is a member of.
func (s *GroupService) ListGroupsForUser(ctx context.Context, userID string) ([]models.Group, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListGroupsForUser(ctx, userID)
}

// MemberBalance computes one user's net position in a group by scanning the
// group's expense ledger. Positive means the user owes the group net;
// negative means the user is owed.
func (s *GroupService) MemberBalance(ctx context.Context, userID, groupID string) (float64, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return 0, err
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}

	return calculator.MemberBalance(user.ID, expenses), nil
}

// GroupBalances computes the net balance for every member of the group, plus
// departed users still carrying a share or a payment.
func (s *GroupService) GroupBalances(ctx context.Context, groupID string) (map[string]float64, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return calculator.GroupBalances(group.Members, expenses), nil
}
