package domain

import (
	"context"
	"time"
)

// CommentCreatedEvent is handed to the gamification side of the platform
// after a comment lands. Publishing is fire-and-forget for the core.
type CommentCreatedEvent struct {
	CommentID int64     `json:"comment_id"`
	MarkID    int64     `json:"mark_id"`
	OwnerID   int64     `json:"owner_id"`
	ParentID  int64     `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type EventPublisher interface {
	PublishCommentCreated(ctx context.Context, ev CommentCreatedEvent) error
}
