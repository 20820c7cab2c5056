package domain

import (
	"context"
	"time"
)

// Mark is a pin on the map users comment on.
type Mark struct {
	ID         int64     `json:"id"`
	Name       string    `json:"mark_name"`
	OwnerID    int64     `json:"owner_id"`
	CategoryID int64     `json:"category_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	StartAt    time.Time `json:"start_at"`
	// Duration in hours
	Duration  int       `json:"duration"`
	IsEnded   bool      `json:"is_ended"`
	CreatedAt time.Time `json:"created_at"`
}

// MarkRepository defines the contract for mark data persistence.
type MarkRepository interface {
	// GetByID retrieves a mark by its ID.
	// Returns ErrNotFound if the mark doesn't exist.
	GetByID(ctx context.Context, id int64) (Mark, error)
}
