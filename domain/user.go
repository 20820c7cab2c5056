package domain

import (
	"context"
	"time"
)

// User represents an already-authenticated platform user. Registration and
// credentials live outside this core.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id int64) (User, error)

	GetByIDs(ctx context.Context, ids []int64) ([]User, error)
}
