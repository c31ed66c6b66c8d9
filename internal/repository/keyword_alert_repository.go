package repository

import (
	"context"
	"errors"

	"github.com/bazary/bazary-backend/internal/model"
	"gorm.io/gorm"
)

type KeywordAlertRepository interface {
	Create(ctx context.Context, a *model.KeywordAlert) error
	FindByID(ctx context.Context, id uint64) (*model.KeywordAlert, error)
	Exists(ctx context.Context, userID uint64, keyword string) (bool, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.KeywordAlert, error)
	CountByUser(ctx context.Context, userID uint64) (int64, error)
	Delete(ctx context.Context, id uint64) error
	FindMatchingTitle(ctx context.Context, title string) ([]model.KeywordAlert, error)
}

type keywordAlertRepository struct {
	db *gorm.DB
}

func NewKeywordAlertRepository(db *gorm.DB) KeywordAlertRepository {
	return &keywordAlertRepository{db: db}
}

func (r *keywordAlertRepository) Create(ctx context.Context, a *model.KeywordAlert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *keywordAlertRepository) FindByID(ctx context.Context, id uint64) (*model.KeywordAlert, error) {
	var a model.KeywordAlert
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *keywordAlertRepository) Exists(ctx context.Context, userID uint64, keyword string) (bool, error) {
	var a model.KeywordAlert
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND keyword = ?", userID, keyword).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *keywordAlertRepository) ListByUser(ctx context.Context, userID uint64) ([]model.KeywordAlert, error) {
	var list []model.KeywordAlert
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *keywordAlertRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.KeywordAlert{}).
		Where("user_id = ?", userID).
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *keywordAlertRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.KeywordAlert{}, id).Error
}

// FindMatchingTitle returns alerts whose keyword appears in the given title.
// Keywords are stored lowercased; the title is lowered on the SQL side.
func (r *keywordAlertRepository) FindMatchingTitle(ctx context.Context, title string) ([]model.KeywordAlert, error) {
	var list []model.KeywordAlert
	if err := r.db.WithContext(ctx).
		Where("? LIKE CONCAT('%', keyword, '%')", title).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
