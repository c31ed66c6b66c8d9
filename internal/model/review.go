package model

import "time"

type Review struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	ReviewerID  uint64    `gorm:"column:reviewer_id;not null;uniqueIndex:uk_reviews_reviewer_product"`
	ReviewedID  uint64    `gorm:"column:reviewed_id;not null;index"`
	ProductID   uint64    `gorm:"column:product_id;not null;uniqueIndex:uk_reviews_reviewer_product"`
	Rating      int       `gorm:"not null"`
	MannerItems string    `gorm:"column:manner_items;type:text"` // JSON array of tags
	Content     *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Review) TableName() string {
	return "reviews"
}
