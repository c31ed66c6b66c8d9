package repository

import (
	"context"
	"errors"

	"github.com/bazary/bazary-backend/internal/model"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, rp *model.Report) error
	FindByID(ctx context.Context, id uint64) (*model.Report, error)
	Exists(ctx context.Context, reporterID, productID uint64) (bool, error)
	List(ctx context.Context, status model.ReportStatus, limit, offset int) ([]model.Report, int64, error)
	UpdateStatus(ctx context.Context, id uint64, status model.ReportStatus) error
	CountPending(ctx context.Context) (int64, error)
	WithTx(tx *gorm.DB) ReportRepository
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) WithTx(tx *gorm.DB) ReportRepository {
	return &reportRepository{db: tx}
}

func (r *reportRepository) Create(ctx context.Context, rp *model.Report) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uint64) (*model.Report, error) {
	var rp model.Report
	if err := r.db.WithContext(ctx).First(&rp, id).Error; err != nil {
		return nil, err
	}
	return &rp, nil
}

func (r *reportRepository) Exists(ctx context.Context, reporterID, productID uint64) (bool, error) {
	var rp model.Report
	err := r.db.WithContext(ctx).
		Where("reporter_id = ? AND product_id = ?", reporterID, productID).
		First(&rp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *reportRepository) List(ctx context.Context, status model.ReportStatus, limit, offset int) ([]model.Report, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Report{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Report
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id uint64, status model.ReportStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *reportRepository) CountPending(ctx context.Context) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("status = ?", model.ReportStatusPending).
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}
