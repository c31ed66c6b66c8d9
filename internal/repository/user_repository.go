package repository

import (
	"context"

	"github.com/bazary/bazary-backend/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]model.User, int64, error)
	Update(ctx context.Context, u *model.User) error
	UpdateRole(ctx context.Context, id uint64, role model.Role) error
	AdjustMannerTemp(ctx context.Context, id uint64, delta float64) error
	DeleteCascade(ctx context.Context, tx *gorm.DB, id uint64) error
	Count(ctx context.Context) (int64, error)
	WithTx(tx *gorm.DB) UserRepository
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]model.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.User
	if err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *userRepository) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepository) UpdateRole(ctx context.Context, id uint64, role model.Role) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

// AdjustMannerTemp applies the delta and clamps in a single UPDATE so that
// concurrent reviews cannot lose increments or leave the [0,99] band.
func (r *userRepository) AdjustMannerTemp(ctx context.Context, id uint64, delta float64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("manner_temp", gorm.Expr("LEAST(?, GREATEST(?, manner_temp + ?))",
			model.MannerTempMax, model.MannerTempMin, delta)).Error
}

// DeleteCascade removes a user and every record referencing them inside the
// caller's transaction: owned products with their dependents, conversations
// in either role with their messages, sent messages, reviews in either
// direction, proposals in either role, favorites, reports, notifications and
// keyword alerts.
func (r *userRepository) DeleteCascade(ctx context.Context, tx *gorm.DB, id uint64) error {
	ownedIDs := tx.Model(&model.Product{}).Select("id").Where("user_id = ?", id)
	convIDs := tx.Model(&model.Conversation{}).Select("id").
		Where("buyer_id = ? OR seller_id = ? OR product_id IN (?)", id, id, ownedIDs)

	if err := tx.WithContext(ctx).Where("conversation_id IN (?)", convIDs).Delete(&model.Message{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ? OR product_id IN (?)", id, id, ownedIDs).
		Delete(&model.Conversation{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("sender_id = ?", id).Delete(&model.Message{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).
		Where("reviewer_id = ? OR reviewed_id = ?", id, id).
		Delete(&model.Review{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ? OR product_id IN (?)", id, id, ownedIDs).
		Delete(&model.PriceProposal{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).
		Where("user_id = ? OR product_id IN (?)", id, ownedIDs).
		Delete(&model.Favorite{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).
		Where("reporter_id = ? OR product_id IN (?)", id, ownedIDs).
		Delete(&model.Report{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("user_id = ?", id).Delete(&model.Notification{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("user_id = ?", id).Delete(&model.KeywordAlert{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("user_id = ?", id).Delete(&model.Product{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&model.User{}, id).Error
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}
