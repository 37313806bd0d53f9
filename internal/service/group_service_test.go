package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/smartsplit/backend/internal/models"
)

func TestCreateGroup(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	admin := createUser(t, store, "admin@example.com", "Admin")

	group, err := svc.CreateGroup(ctx, "Roommates", admin.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.ID == "" {
		t.Error("expected non-empty group ID")
	}
	if group.AdminID != admin.ID {
		t.Errorf("admin = %s, want %s", group.AdminID, admin.ID)
	}
	if !group.HasMember(admin.ID) {
		t.Error("expected admin to be a member immediately after creation")
	}
}

func TestCreateGroupMissingAdmin(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)

	_, err := svc.CreateGroup(context.Background(), "Roommates", "no-such-user")
	if !models.IsNotFound(err) {
		t.Fatalf("CreateGroup error = %v, want NotFoundError", err)
	}
}

func TestCreateGroupDuplicateName(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	admin := createUser(t, store, "admin@example.com", "Admin")
	if _, err := svc.CreateGroup(ctx, "Roommates", admin.ID); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	_, err := svc.CreateGroup(ctx, "Roommates", admin.ID)
	if !errors.Is(err, models.ErrDuplicateName) {
		t.Fatalf("CreateGroup error = %v, want ErrDuplicateName", err)
	}
}

func TestMembershipSymmetry(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	admin := createUser(t, store, "admin@example.com", "Admin")
	user := createUser(t, store, "user@example.com", "User")

	group, err := svc.CreateGroup(ctx, "Trip", admin.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	// After AddMember both views must agree.
	group, err = svc.AddMember(ctx, group.ID, user.ID)
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if !group.HasMember(user.ID) {
		t.Error("user missing from group.Members after AddMember")
	}
	groups, err := svc.ListGroupsForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListGroupsForUser failed: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != group.ID {
		t.Errorf("user's groups = %v, want exactly the joined group", groups)
	}

	// After RemoveMember neither view holds the link.
	group, err = svc.RemoveMember(ctx, group.ID, user.ID)
	if err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if group.HasMember(user.ID) {
		t.Error("user still in group.Members after RemoveMember")
	}
	groups, err = svc.ListGroupsForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListGroupsForUser failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("user's groups = %v, want empty after RemoveMember", groups)
	}
}

func TestAddMemberAlreadyMember(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	admin := createUser(t, store, "admin@example.com", "Admin")
	group, err := svc.CreateGroup(ctx, "Lunch", admin.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	_, err = svc.AddMember(ctx, group.ID, admin.ID)
	if !errors.Is(err, models.ErrAlreadyMember) {
		t.Fatalf("AddMember error = %v, want ErrAlreadyMember", err)
	}
}

// Removing the admin through the generic path is allowed; the group then
// carries an AdminID that no longer appears in the member set.
func TestRemoveAdminIsPermitted(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	admin := createUser(t, store, "admin@example.com", "Admin")
	other := createUser(t, store, "other@example.com", "Other")

	group, err := svc.CreateGroup(ctx, "Club", admin.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if _, err := svc.AddMember(ctx, group.ID, other.ID); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	group, err = svc.RemoveMember(ctx, group.ID, admin.ID)
	if err != nil {
		t.Fatalf("RemoveMember(admin) failed: %v", err)
	}
	if group.HasMember(admin.ID) {
		t.Error("admin still in member set after removal")
	}
	if group.AdminID != admin.ID {
		t.Errorf("AdminID = %s, want unchanged %s", group.AdminID, admin.ID)
	}
}

func TestRenameGroup(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	admin := createUser(t, store, "admin@example.com", "Admin")
	group, err := svc.CreateGroup(ctx, "Old Name", admin.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	group, err = svc.RenameGroup(ctx, group.ID, "New Name")
	if err != nil {
		t.Fatalf("RenameGroup failed: %v", err)
	}
	if group.Name != "New Name" {
		t.Errorf("name = %s, want New Name", group.Name)
	}
}

func TestDeleteGroupCascadesExpenses(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store)
	expenses := NewExpenseService(store)
	ctx := context.Background()

	group, alice, _, _ := threeMemberGroup(t, store)

	if _, err := expenses.CreateExpense(ctx, group.ID, alice.ID, 90.0, "Dinner", nil); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	if err := groups.DeleteGroup(ctx, group.ID); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	_, err := expenses.ListExpenses(ctx, group.ID)
	if !models.IsNotFound(err) {
		t.Fatalf("ListExpenses after delete error = %v, want NotFoundError", err)
	}
}

func TestMemberBalanceSign(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store)
	expenses := NewExpenseService(store)
	ctx := context.Background()

	group, alice, bob, charlie := threeMemberGroup(t, store)

	// Scenario: alice pays 90 split evenly across the three members.
	if _, err := expenses.CreateExpense(ctx, group.ID, alice.ID, 90.0, "Dinner", nil); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	assertMemberBalance(t, groups, alice.ID, group.ID, -60.0) // 30 - 90
	assertMemberBalance(t, groups, bob.ID, group.ID, 30.0)
	assertMemberBalance(t, groups, charlie.ID, group.ID, 30.0)

	balances, err := groups.GroupBalances(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupBalances failed: %v", err)
	}
	var sum float64
	for _, net := range balances {
		sum += net
	}
	if math.Abs(sum) > 0.01 {
		t.Errorf("group balances sum = %v, want ~0", sum)
	}
}

// Balances are recomputed on every call; a ledger mutation between two calls
// must be visible without any cache invalidation step.
func TestBalancesReflectLatestLedger(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store)
	expenses := NewExpenseService(store)
	ctx := context.Background()

	group, alice, bob, _ := threeMemberGroup(t, store)

	assertMemberBalance(t, groups, alice.ID, group.ID, 0)

	expense, err := expenses.CreateExpense(ctx, group.ID, alice.ID, 90.0, "Dinner", nil)
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	assertMemberBalance(t, groups, alice.ID, group.ID, -60.0)
	assertMemberBalance(t, groups, bob.ID, group.ID, 30.0)

	if err := expenses.DeleteExpense(ctx, group.ID, expense.ID); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	assertMemberBalance(t, groups, alice.ID, group.ID, 0)
	assertMemberBalance(t, groups, bob.ID, group.ID, 0)
}

func assertMemberBalance(t *testing.T, svc *GroupService, userID, groupID string, want float64) {
	t.Helper()
	got, err := svc.MemberBalance(context.Background(), userID, groupID)
	if err != nil {
		t.Fatalf("MemberBalance(%s) failed: %v", userID, err)
	}
	if math.Abs(got-want) > 0.01 {
		t.Errorf("MemberBalance(%s) = %v, want %v", userID, got, want)
	}
}
