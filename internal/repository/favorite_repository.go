package repository

import (
	"context"
	"errors"

	"github.com/bazary/bazary-backend/internal/model"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Create(ctx context.Context, f *model.Favorite) error
	Exists(ctx context.Context, userID, productID uint64) (bool, error)
	Delete(ctx context.Context, userID, productID uint64) (int64, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Favorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, f *model.Favorite) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, productID uint64) (bool, error) {
	var f model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, productID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.Favorite{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Favorite, error) {
	var list []model.Favorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
