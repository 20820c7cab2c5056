// Package events holds the local stand-in for the platform event bus. The
// bus itself lives outside this service; gamification consumes the events.
package events

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
)

type logPublisher struct{}

var _ domain.EventPublisher = (*logPublisher)(nil)

// NewLogPublisher returns a publisher that only records the event. Swap it
// for the real bus client when the gamification pipeline is connected.
func NewLogPublisher() *logPublisher {
	return &logPublisher{}
}

func (p *logPublisher) PublishCommentCreated(_ context.Context, ev domain.CommentCreatedEvent) error {
	logrus.WithFields(logrus.Fields{
		"comment_id": ev.CommentID,
		"mark_id":    ev.MarkID,
		"owner_id":   ev.OwnerID,
	}).Info("comment created")
	return nil
}
