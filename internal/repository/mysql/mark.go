package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/repository/mysql/model"
)

type markRepository struct {
	DB *gorm.DB
}

var _ domain.MarkRepository = (*markRepository)(nil)

func NewMarkRepository(db *gorm.DB) *markRepository {
	return &markRepository{
		DB: db,
	}
}

func (r *markRepository) GetByID(ctx context.Context, id int64) (domain.Mark, error) {
	var markModel model.Mark
	err := r.DB.WithContext(ctx).First(&markModel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Mark{}, domain.ErrNotFound
	} else if err != nil {
		return domain.Mark{}, err
	}
	return markModel.ToDomain(), nil
}
