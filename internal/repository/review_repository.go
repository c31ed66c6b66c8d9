package repository

import (
	"context"
	"errors"

	"github.com/bazary/bazary-backend/internal/model"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *model.Review) error
	Exists(ctx context.Context, reviewerID, productID uint64) (bool, error)
	ListForUser(ctx context.Context, reviewedID uint64) ([]model.Review, error)
	CountForUser(ctx context.Context, reviewedID uint64) (int64, error)
	WithTx(tx *gorm.DB) ReviewRepository
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	return &reviewRepository{db: tx}
}

func (r *reviewRepository) Create(ctx context.Context, rv *model.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *reviewRepository) Exists(ctx context.Context, reviewerID, productID uint64) (bool, error) {
	var rv model.Review
	err := r.db.WithContext(ctx).
		Where("reviewer_id = ? AND product_id = ?", reviewerID, productID).
		First(&rv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *reviewRepository) ListForUser(ctx context.Context, reviewedID uint64) ([]model.Review, error) {
	var list []model.Review
	if err := r.db.WithContext(ctx).
		Where("reviewed_id = ?", reviewedID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reviewRepository) CountForUser(ctx context.Context, reviewedID uint64) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("reviewed_id = ?", reviewedID).
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}
