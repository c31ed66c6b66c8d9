package repository

import (
	"context"
	"time"

	"github.com/bazary/bazary-backend/internal/model"
	"gorm.io/gorm"
)

// ProductFilter narrows the public listing query.
type ProductFilter struct {
	City     string
	District string
	Category string
	Search   string
	Status   model.ProductStatus
	MinPrice *uint
	MaxPrice *uint
	Sort     string // newest, oldest, price_asc, price_desc
}

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uint64) (*model.Product, error)
	List(ctx context.Context, f ProductFilter, limit, offset int) ([]model.Product, int64, error)
	ListByOwner(ctx context.Context, userID uint64) ([]model.Product, error)
	ListAll(ctx context.Context, limit, offset int) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	UpdateStatus(ctx context.Context, id uint64, status model.ProductStatus) error
	SetHidden(ctx context.Context, id uint64, hidden bool) error
	IncrementViews(ctx context.Context, id uint64) error
	BumpIfCooledDown(ctx context.Context, id uint64, now, cutoff time.Time) (int64, error)
	DeleteCascade(ctx context.Context, tx *gorm.DB, id uint64) error
	Count(ctx context.Context) (int64, error)
	WithTx(tx *gorm.DB) ProductRepository
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uint64) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, f ProductFilter, limit, offset int) ([]model.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{}).Where("hidden = ?", false)

	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.District != "" {
		q = q.Where("district = ?", f.District)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	switch f.Sort {
	case "price_asc":
		order = "price ASC"
	case "price_desc":
		order = "price DESC"
	case "oldest":
		order = "created_at ASC"
	}

	var list []model.Product
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *productRepository) ListByOwner(ctx context.Context, userID uint64) ([]model.Product, error) {
	var list []model.Product
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListAll includes hidden products; intended for the admin console.
func (r *productRepository) ListAll(ctx context.Context, limit, offset int) ([]model.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Product
	if err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepository) UpdateStatus(ctx context.Context, id uint64, status model.ProductStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *productRepository) SetHidden(ctx context.Context, id uint64, hidden bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Update("hidden", hidden).Error
}

func (r *productRepository) IncrementViews(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

// BumpIfCooledDown sets bumped_at in a single conditional UPDATE so two
// bump calls racing inside the cooldown window cannot both succeed.
// Returns the number of rows updated (0 means the cooldown is still active
// or the product left the available state).
func (r *productRepository) BumpIfCooledDown(ctx context.Context, id uint64, now, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND status = ? AND (bumped_at IS NULL OR bumped_at <= ?)",
			id, model.ProductStatusAvailable, cutoff).
		Updates(map[string]interface{}{
			"bumped_at":  now,
			"updated_at": now,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// DeleteCascade removes a product and everything hanging off it inside the
// caller's transaction: messages, conversations, favorites, reports and
// price proposals.
func (r *productRepository) DeleteCascade(ctx context.Context, tx *gorm.DB, id uint64) error {
	convIDs := tx.Model(&model.Conversation{}).Select("id").Where("product_id = ?", id)
	if err := tx.WithContext(ctx).Where("conversation_id IN (?)", convIDs).Delete(&model.Message{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("product_id = ?", id).Delete(&model.Conversation{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("product_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("product_id = ?", id).Delete(&model.Report{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("product_id = ?", id).Delete(&model.PriceProposal{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}
