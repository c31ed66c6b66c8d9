package service

import (
	"context"
	"errors"

	"github.com/bazary/bazary-backend/internal/model"
	"github.com/bazary/bazary-backend/internal/repository"
	"gorm.io/gorm"
)

type ModerationService interface {
	FileReport(ctx context.Context, productID, reporterID uint64, reason string, description *string) (*model.Report, error)
	ListReports(ctx context.Context, callerRole model.Role, status string, limit, offset int) ([]model.Report, int64, error)
	ResolveReport(ctx context.Context, reportID uint64, callerRole model.Role, status string, hideProduct bool) (*model.Report, error)
}

type moderationService struct {
	reports  repository.ReportRepository
	products repository.ProductRepository
	tx       repository.TxRunner
}

func NewModerationService(reports repository.ReportRepository, products repository.ProductRepository, tx repository.TxRunner) ModerationService {
	return &moderationService{reports: reports, products: products, tx: tx}
}

func (s *moderationService) FileReport(ctx context.Context, productID, reporterID uint64, reason string, description *string) (*model.Report, error) {
	r := model.ReportReason(reason)
	if !r.Valid() {
		return nil, invalidInput("invalid reason, must be one of: %v", model.ReportReasons)
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	exists, err := s.reports.Exists(ctx, reporterID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}
	rp := &model.Report{
		ProductID:   productID,
		ReporterID:  reporterID,
		Reason:      r,
		Description: description,
		Status:      model.ReportStatusPending,
	}
	if err := s.reports.Create(ctx, rp); err != nil {
		return nil, err
	}
	return rp, nil
}

func (s *moderationService) ListReports(ctx context.Context, callerRole model.Role, status string, limit, offset int) ([]model.Report, int64, error) {
	if !callerRole.IsStaff() {
		return nil, 0, ErrForbidden
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.reports.List(ctx, model.ReportStatus(status), limit, offset)
}

// ResolveReport updates the report and, when requested, hides the listing in
// the same transaction. Moderators may only mark reports reviewed; resolving
// is an admin escalation.
func (s *moderationService) ResolveReport(ctx context.Context, reportID uint64, callerRole model.Role, status string, hideProduct bool) (*model.Report, error) {
	if !callerRole.IsStaff() {
		return nil, ErrForbidden
	}
	target := model.ReportStatus(status)
	if target != model.ReportStatusReviewed && target != model.ReportStatusResolved {
		return nil, invalidInput("status must be one of: reviewed, resolved")
	}
	if callerRole == model.RoleModerator && target == model.ReportStatusResolved {
		return nil, ErrForbidden
	}

	rp, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err = s.tx.InTx(ctx, func(tx *gorm.DB) error {
		if hideProduct {
			if err := s.products.WithTx(tx).SetHidden(ctx, rp.ProductID, true); err != nil {
				return err
			}
		}
		return s.reports.WithTx(tx).UpdateStatus(ctx, reportID, target)
	})
	if err != nil {
		return nil, err
	}
	rp.Status = target
	return rp, nil
}
