package models

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique).
	// Used for login and notifications.
	Email string

	// DisplayName is the name shown to other group members.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to API responses.
	PasswordHash string

	// Verified reports whether the user has confirmed their email address.
	// Unverified users cannot log in.
	Verified bool

	// VerificationToken is the pending account-verification or
	// password-reset token, empty when none is outstanding.
	VerificationToken string

	// TokenExpiresAt is the Unix timestamp after which VerificationToken
	// is no longer honored. Zero when no token is outstanding.
	TokenExpiresAt int64

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64
}

// NewUser creates a user with the given identity fields.
// ID and timestamps are assigned by the store on save.
func NewUser(email, displayName, passwordHash string) *User {
	return &User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
	}
}
