package model

import (
	"time"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
)

type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Content   string    `gorm:"type:varchar(256);not null"`
	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false"`
	OwnerID   int64     `gorm:"column:owner_id;not null"`
	MarkID    int64     `gorm:"column:mark_id;not null"`
	ParentID  *int64    `gorm:"column:parent_id"`
	CreatedAt time.Time `gorm:"type:datetime"`
	UpdatedAt time.Time `gorm:"type:datetime"`

	// removing a user, a mark or a root comment takes the dependents with it
	Owner  *User    `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Mark   *Mark    `gorm:"foreignKey:MarkID;constraint:OnDelete:CASCADE"`
	Parent *Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}

func (Comment) TableName() string {
	return "comments"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	m := &Comment{
		ID:        c.ID,
		Content:   c.Content,
		IsDeleted: c.IsDeleted,
		OwnerID:   c.OwnerID,
		MarkID:    c.MarkID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	// root comments keep parent_id NULL in the store
	if c.ParentID != 0 {
		parentID := c.ParentID
		m.ParentID = &parentID
	}
	return m
}

func (m *Comment) ToDomain() domain.Comment {
	c := domain.Comment{
		ID:        m.ID,
		Content:   m.Content,
		IsDeleted: m.IsDeleted,
		OwnerID:   m.OwnerID,
		MarkID:    m.MarkID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.ParentID != nil {
		c.ParentID = *m.ParentID
	}
	return c
}
