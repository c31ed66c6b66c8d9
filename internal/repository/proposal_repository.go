package repository

import (
	"context"

	"github.com/bazary/bazary-backend/internal/model"
	"gorm.io/gorm"
)

type ProposalRepository interface {
	Create(ctx context.Context, p *model.PriceProposal) error
	FindByID(ctx context.Context, id uint64) (*model.PriceProposal, error)
	FindByBuyerAndProduct(ctx context.Context, buyerID, productID uint64) (*model.PriceProposal, error)
	ListByProduct(ctx context.Context, productID uint64) ([]model.PriceProposal, error)
	ListByProductAndBuyer(ctx context.Context, productID, buyerID uint64) ([]model.PriceProposal, error)
	Reopen(ctx context.Context, id uint64, proposedPrice uint) error
	SettleIfPending(ctx context.Context, id uint64, status model.ProposalStatus) (int64, error)
	WithTx(tx *gorm.DB) ProposalRepository
}

type proposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) WithTx(tx *gorm.DB) ProposalRepository {
	return &proposalRepository{db: tx}
}

func (r *proposalRepository) Create(ctx context.Context, p *model.PriceProposal) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proposalRepository) FindByID(ctx context.Context, id uint64) (*model.PriceProposal, error) {
	var p model.PriceProposal
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proposalRepository) FindByBuyerAndProduct(ctx context.Context, buyerID, productID uint64) (*model.PriceProposal, error) {
	var p model.PriceProposal
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND product_id = ?", buyerID, productID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proposalRepository) ListByProduct(ctx context.Context, productID uint64) ([]model.PriceProposal, error) {
	var list []model.PriceProposal
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *proposalRepository) ListByProductAndBuyer(ctx context.Context, productID, buyerID uint64) ([]model.PriceProposal, error) {
	var list []model.PriceProposal
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND buyer_id = ?", productID, buyerID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Reopen recycles a settled proposal back to pending with a new price.
func (r *proposalRepository) Reopen(ctx context.Context, id uint64, proposedPrice uint) error {
	return r.db.WithContext(ctx).
		Model(&model.PriceProposal{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"proposed_price": proposedPrice,
			"status":         model.ProposalStatusPending,
		}).Error
}

// SettleIfPending moves a proposal out of pending with a conditional UPDATE.
// Concurrent accept/reject calls are serialized by the store; only the first
// caller sees RowsAffected == 1.
func (r *proposalRepository) SettleIfPending(ctx context.Context, id uint64, status model.ProposalStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.PriceProposal{}).
		Where("id = ? AND status = ?", id, model.ProposalStatusPending).
		Update("status", status)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
