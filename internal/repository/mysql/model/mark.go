package model

import (
	"time"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
)

type Mark struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Name       string    `gorm:"column:mark_name;type:varchar(64);not null"`
	OwnerID    int64     `gorm:"column:owner_id;not null"`
	CategoryID int64     `gorm:"column:category_id;not null"`
	Latitude   float64   `gorm:"column:latitude;not null"`
	Longitude  float64   `gorm:"column:longitude;not null"`
	StartAt    time.Time `gorm:"column:start_at;type:datetime"`
	Duration   int       `gorm:"column:duration;not null;default:0"`
	IsEnded    bool      `gorm:"column:is_ended;not null;default:false"`
	CreatedAt  time.Time `gorm:"type:datetime"`
}

func (Mark) TableName() string {
	return "marks"
}

func (m *Mark) ToDomain() domain.Mark {
	return domain.Mark{
		ID:         m.ID,
		Name:       m.Name,
		OwnerID:    m.OwnerID,
		CategoryID: m.CategoryID,
		Latitude:   m.Latitude,
		Longitude:  m.Longitude,
		StartAt:    m.StartAt,
		Duration:   m.Duration,
		IsEnded:    m.IsEnded,
		CreatedAt:  m.CreatedAt,
	}
}
