package model

import "time"

type KeywordAlert struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_alerts_user_keyword"`
	Keyword   string    `gorm:"size:120;not null;uniqueIndex:uk_alerts_user_keyword"` // stored lowercased
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (KeywordAlert) TableName() string {
	return "keyword_alerts"
}
