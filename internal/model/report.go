package model

import "time"

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReviewed ReportStatus = "reviewed"
	ReportStatusResolved ReportStatus = "resolved"
)

type ReportReason string

const (
	ReportReasonInappropriate ReportReason = "inappropriate"
	ReportReasonScam          ReportReason = "scam"
	ReportReasonDuplicate     ReportReason = "duplicate"
	ReportReasonWrongCategory ReportReason = "wrong_category"
	ReportReasonOther         ReportReason = "other"
)

var ReportReasons = []ReportReason{
	ReportReasonInappropriate,
	ReportReasonScam,
	ReportReasonDuplicate,
	ReportReasonWrongCategory,
	ReportReasonOther,
}

func (r ReportReason) Valid() bool {
	for _, v := range ReportReasons {
		if r == v {
			return true
		}
	}
	return false
}

type Report struct {
	ID          uint64       `gorm:"primaryKey;autoIncrement"`
	ProductID   uint64       `gorm:"column:product_id;not null;uniqueIndex:uk_reports_reporter_product"`
	ReporterID  uint64       `gorm:"column:reporter_id;not null;uniqueIndex:uk_reports_reporter_product"`
	Reason      ReportReason `gorm:"size:32;not null"`
	Description *string      `gorm:"type:text"`
	Status      ReportStatus `gorm:"size:32;not null;default:pending;index"`
	CreatedAt   time.Time    `gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime"`
}

func (Report) TableName() string {
	return "reports"
}
