package userRepo

import (
	"context"
	"errors"

	"talentsync/models"
)

// Storage-level outcomes.
var (
	// ErrNotFound means no user matched the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail means the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines data access for recruiter and candidate accounts.
type UserRepository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ListByRole retrieves all users with the given role.
	ListByRole(ctx context.Context, role string) ([]models.User, error)
	// SetTokenHash stores the hash of the currently issued auth token.
	SetTokenHash(ctx context.Context, id, tokenHash string) error
	// SetStatus updates a candidate's advisory availability status.
	SetStatus(ctx context.Context, id, status string) error
	// SetCalendarToken stores the serialized calendar OAuth token.
	SetCalendarToken(ctx context.Context, id, token string) error
}
