package model

import "time"

type ProductStatus string

const (
	ProductStatusAvailable ProductStatus = "available"
	ProductStatusReserved  ProductStatus = "reserved"
	ProductStatusSold      ProductStatus = "sold"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusAvailable, ProductStatusReserved, ProductStatusSold:
		return true
	}
	return false
}

type Product struct {
	ID          uint64        `gorm:"primaryKey;autoIncrement"`
	UserID      uint64        `gorm:"column:user_id;index;not null"`
	Title       string        `gorm:"size:200;not null"`
	Description string        `gorm:"type:text;not null"`
	Price       uint          `gorm:"not null"`
	Images      string        `gorm:"type:text"` // JSON array of URLs
	Category    string        `gorm:"size:120;not null;index"`
	City        string        `gorm:"size:120;not null;index"`
	District    *string       `gorm:"size:120"`
	Status      ProductStatus `gorm:"size:32;not null;default:available;index"`
	Hidden      bool          `gorm:"not null;default:false"`
	Negotiable  bool          `gorm:"not null;default:true"`
	Views       uint          `gorm:"not null;default:0"`
	BumpedAt    *time.Time    `gorm:"column:bumped_at"`
	CreatedAt   time.Time     `gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
