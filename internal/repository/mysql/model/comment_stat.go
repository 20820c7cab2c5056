package model

import (
	"time"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
)

type CommentStat struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	CommentID     int64     `gorm:"column:comment_id;not null;uniqueIndex:uq_comment_stats_comment"`
	LikesCount    int64     `gorm:"column:likes_count;not null;default:0;index:ix_comment_stats_likes"`
	DislikesCount int64     `gorm:"column:dislikes_count;not null;default:0"`
	TotalReplies  int64     `gorm:"column:total_replies;not null;default:0"`
	LastActivity  time.Time `gorm:"column:last_activity;type:datetime;index:ix_comment_stats_activity"`

	Comment *Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}

func (CommentStat) TableName() string {
	return "comment_stats"
}

func (m *CommentStat) ToDomain() domain.CommentStat {
	return domain.CommentStat{
		ID:            m.ID,
		CommentID:     m.CommentID,
		LikesCount:    m.LikesCount,
		DislikesCount: m.DislikesCount,
		TotalReplies:  m.TotalReplies,
		LastActivity:  m.LastActivity,
	}
}
