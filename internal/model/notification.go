package model

import "time"

const (
	NotificationTypeMessage          = "message"
	NotificationTypePriceProposal    = "price_proposal"
	NotificationTypeProposalAccepted = "proposal_accepted"
	NotificationTypeProposalRejected = "proposal_rejected"
	NotificationTypeReview           = "review"
	NotificationTypeFavorited        = "product_favorited"
	NotificationTypeKeywordMatch     = "keyword_match"
)

type Notification struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"column:user_id;index;not null"`
	Type      string    `gorm:"size:64;not null"`
	Title     string    `gorm:"size:255"`
	Message   string    `gorm:"type:text"`
	Link      *string   `gorm:"size:512"`
	Read      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
