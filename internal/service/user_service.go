package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smartsplit/backend/internal/auth"
	"github.com/smartsplit/backend/internal/email"
	"github.com/smartsplit/backend/internal/models"
	"github.com/smartsplit/backend/internal/storage"
)

// tokenTTL is how long account-verification and password-reset tokens stay
// valid.
const tokenTTL = 48 * time.Hour

// UserService implements registration, login and the verification and
// password-reset flows.
type UserService struct {
	store   storage.Store
	authn   auth.Authenticator
	jwt     *auth.JWTManager
	mailer  email.Sender
	baseURL string
}

// NewUserService creates a UserService. baseURL is the public frontend URL
// used to build verification and reset links.
func NewUserService(store storage.Store, authn auth.Authenticator, jwt *auth.JWTManager, mailer email.Sender, baseURL string) *UserService {
	return &UserService{
		store:   store,
		authn:   authn,
		jwt:     jwt,
		mailer:  mailer,
		baseURL: baseURL,
	}
}

// Register creates a new account and sends a verification email. The email
// is best-effort: a delivery failure is logged and never fails registration.
func (s *UserService) Register(ctx context.Context, emailAddr, displayName, password string) (*models.User, error) {
	slog.Info("Register request received", "email", emailAddr)

	user, err := s.authn.Register(ctx, emailAddr, displayName, password)
	if err != nil {
		slog.Warn("Register failed", "email", emailAddr, "error", err)
		return nil, err
	}

	user.VerificationToken = uuid.New().String()
	user.TokenExpiresAt = time.Now().Add(tokenTTL).Unix()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to store verification token: %w", err)
	}

	link := fmt.Sprintf("%s/verify/%s", s.baseURL, user.VerificationToken)
	if err := s.mailer.Send(ctx, user.Email, "Please Verify Your Account",
		"Thank you for registering. Please verify your account using the following link: "+link,
	); err != nil {
		slog.Error("Failed to send verification email", "email", user.Email, "error", err)
	}

	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login authenticates the user and returns a signed JWT. Unverified accounts
// cannot log in.
func (s *UserService) Login(ctx context.Context, emailAddr, password string) (string, error) {
	slog.Info("Login request received", "email", emailAddr)

	user, err := s.authn.Authenticate(ctx, emailAddr, password)
	if err != nil {
		slog.Warn("Login failed", "email", emailAddr, "error", err)
		return "", err
	}

	if !user.Verified {
		slog.Warn("Login rejected, account not verified", "email", emailAddr)
		return "", auth.ErrNotVerified
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		return "", err
	}

	slog.Info("Login successful", "user_id", user.ID)
	return token, nil
}

// VerifyAccount marks the account holding the token as verified and clears
// the token.
func (s *UserService) VerifyAccount(ctx context.Context, token string) (*models.User, error) {
	user, err := s.store.GetUserByVerificationToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if user.TokenExpiresAt < time.Now().Unix() {
		slog.Warn("Verification token expired", "user_id", user.ID)
		return nil, auth.ErrTokenExpired
	}

	user.Verified = true
	user.VerificationToken = ""
	user.TokenExpiresAt = 0
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("User verified", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// RequestPasswordReset issues a reset token and mails a reset link.
// Delivery is best-effort, like the verification mail.
func (s *UserService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.store.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	user.VerificationToken = uuid.New().String()
	user.TokenExpiresAt = time.Now().Add(tokenTTL).Unix()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/password-reset/%s", s.baseURL, user.VerificationToken)
	if err := s.mailer.Send(ctx, user.Email, "Reset password",
		"Click the link to reset your password: "+link,
	); err != nil {
		slog.Error("Failed to send reset email", "email", user.Email, "error", err)
	}

	slog.Info("Password reset requested", "user_id", user.ID)
	return nil
}

// VerifyPasswordResetToken checks a reset token without consuming it, so the
// frontend can show the reset form only for live tokens.
func (s *UserService) VerifyPasswordResetToken(ctx context.Context, token string) (*models.User, error) {
	user, err := s.store.GetUserByVerificationToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user.TokenExpiresAt < time.Now().Unix() {
		return nil, auth.ErrTokenExpired
	}
	return user, nil
}

// UpdatePassword consumes a reset token and replaces the password.
func (s *UserService) UpdatePassword(ctx context.Context, token, newPassword string) error {
	user, err := s.VerifyPasswordResetToken(ctx, token)
	if err != nil {
		return err
	}

	if err := s.authn.ValidateCredential(newPassword); err != nil {
		return err
	}
	hash, err := s.authn.HashCredential(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.VerificationToken = ""
	user.TokenExpiresAt = 0
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return err
	}

	slog.Info("Password updated", "user_id", user.ID)
	return nil
}

// Profile returns the user and the groups they belong to.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, []models.Group, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	groups, err := s.store.ListGroupsForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, groups, nil
}

// UpdateProfile changes the user's display name.
func (s *UserService) UpdateProfile(ctx context.Context, userID, displayName string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = displayName
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("Profile updated", "user_id", user.ID)
	return user, nil
}
