package models

// Group represents a named collection of users sharing expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (unique across all groups).
	Name string

	// AdminID is the user who administers the group. The admin is inserted
	// into the member set when the group is created. Removing the admin via
	// RemoveMember is permitted, in which case AdminID references a
	// non-member until the admin is re-added.
	AdminID string

	// Members are the current member users, loaded by the store.
	Members []User

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether the user is currently a member of the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
