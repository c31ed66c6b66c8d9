package model

import "time"

type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

// PriceProposal is a buyer-submitted alternative price for a product.
// SellerID is copied from the product owner at proposal time; product
// ownership never changes, so the copy cannot go stale.
type PriceProposal struct {
	ID            uint64         `gorm:"primaryKey;autoIncrement"`
	ProductID     uint64         `gorm:"column:product_id;not null;uniqueIndex:uk_proposals_buyer_product"`
	BuyerID       uint64         `gorm:"column:buyer_id;not null;uniqueIndex:uk_proposals_buyer_product;index"`
	SellerID      uint64         `gorm:"column:seller_id;not null;index"`
	ProposedPrice uint           `gorm:"column:proposed_price;not null"`
	Status        ProposalStatus `gorm:"size:32;not null;default:pending"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (PriceProposal) TableName() string {
	return "price_proposals"
}
