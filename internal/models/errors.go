package models

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName is returned when creating a group whose name is
	// already taken.
	ErrDuplicateName = errors.New("group name already exists")

	// ErrAlreadyMember is returned when adding a user who is already a
	// member of the group.
	ErrAlreadyMember = errors.New("user is already a member of the group")

	// ErrInvalidSplitSelection is returned when a split resolves to zero
	// usable members: an equal split over an empty group, or a selected
	// split whose selection matches no existing users.
	ErrInvalidSplitSelection = errors.New("no valid members selected for the split")

	// ErrExpenseGroupMismatch is returned when an expense does not belong
	// to the group named in the request.
	ErrExpenseGroupMismatch = errors.New("expense does not belong to the specified group")
)

// NotFoundError reports a lookup miss for a specific entity.
type NotFoundError struct {
	Entity string // "user", "group" or "expense"
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for the given entity and ID.
func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is a lookup miss for any entity.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
