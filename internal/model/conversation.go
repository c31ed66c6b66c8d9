package model

import "time"

type Conversation struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	ProductID uint64    `gorm:"column:product_id;uniqueIndex:uk_conv_product_buyer_seller"`
	BuyerID   uint64    `gorm:"column:buyer_id;uniqueIndex:uk_conv_product_buyer_seller;index"`
	SellerID  uint64    `gorm:"column:seller_id;uniqueIndex:uk_conv_product_buyer_seller;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}
