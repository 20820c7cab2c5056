package model

import (
	"time"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
)

type CommentReaction struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uq_user_comment_reaction"`
	CommentID int64     `gorm:"column:comment_id;not null;uniqueIndex:uq_user_comment_reaction"`
	Type      string    `gorm:"column:reaction_type;type:varchar(16);not null;default:like"`
	CreatedAt time.Time `gorm:"type:datetime"`
	UpdatedAt time.Time `gorm:"type:datetime"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Comment *Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}

func (CommentReaction) TableName() string {
	return "comment_reactions"
}

func (m *CommentReaction) ToDomain() domain.CommentReaction {
	return domain.CommentReaction{
		ID:        m.ID,
		UserID:    m.UserID,
		CommentID: m.CommentID,
		Type:      domain.ReactionType(m.Type),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
