package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/repository/mysql/model"
)

type userRepository struct {
	DB *gorm.DB
}

var _ domain.UserRepository = (*userRepository)(nil)

// NewUserRepository will create an implementation of domain.UserRepository
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{
		DB: db,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	var userModel model.User
	err := r.DB.WithContext(ctx).First(&userModel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.ErrNotFound
	} else if err != nil {
		return domain.User{}, err
	}
	return userModel.ToDomain(), nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).Model(&model.User{}).Where("id IN ?", ids).Find(&users).Error
	res := make([]domain.User, len(users))
	for i := range users {
		res[i] = users[i].ToDomain()
	}
	return res, err
}
