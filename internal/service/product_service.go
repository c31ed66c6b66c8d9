package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/bazary/bazary-backend/internal/model"
	"github.com/bazary/bazary-backend/internal/repository"
	"gorm.io/gorm"
)

// BumpCooldown is the minimum wall-clock wait between bumps of the same
// listing. The check is inclusive: a bump at exactly 24h succeeds.
const BumpCooldown = 24 * time.Hour

type ProductUpdate struct {
	Title       *string
	Description *string
	Price       *uint
	Images      *string
	Category    *string
	City        *string
	District    *string
	Status      *string
	Negotiable  *bool
}

type ProductService interface {
	Create(ctx context.Context, ownerID uint64, p *model.Product) (*model.Product, error)
	Get(ctx context.Context, id, callerID uint64, callerRole model.Role) (*model.Product, error)
	List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]model.Product, int64, error)
	ListMine(ctx context.Context, ownerID uint64) ([]model.Product, error)
	ListAll(ctx context.Context, callerRole model.Role, limit, offset int) ([]model.Product, int64, error)
	Update(ctx context.Context, id, callerID uint64, upd ProductUpdate) (*model.Product, error)
	Bump(ctx context.Context, id, callerID uint64) (*model.Product, error)
	SetHidden(ctx context.Context, id uint64, hidden bool, callerRole model.Role) (*model.Product, error)
	SetStatus(ctx context.Context, id uint64, status string, callerRole model.Role) (*model.Product, error)
	Delete(ctx context.Context, id, callerID uint64, callerRole model.Role) error
}

type productService struct {
	repo   repository.ProductRepository
	alerts KeywordAlertService
	tx     repository.TxRunner
}

func NewProductService(repo repository.ProductRepository, alerts KeywordAlertService, tx repository.TxRunner) ProductService {
	return &productService{repo: repo, alerts: alerts, tx: tx}
}

func (s *productService) Create(ctx context.Context, ownerID uint64, p *model.Product) (*model.Product, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	p.City = strings.TrimSpace(p.City)
	if p.Title == "" || len(p.Title) > 200 {
		return nil, invalidInput("title must be a non-empty string of 200 characters or less")
	}
	if p.Description == "" {
		return nil, invalidInput("description is required")
	}
	if p.Category == "" {
		return nil, invalidInput("category is required")
	}
	if p.City == "" {
		return nil, invalidInput("city is required")
	}
	if p.Images == "" {
		p.Images = `["/images/placeholder.svg"]`
	}
	p.UserID = ownerID
	p.Status = model.ProductStatusAvailable

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	// Keyword-alert fan-out is best-effort and must not fail the create.
	s.alerts.NotifyMatches(ctx, p)
	return p, nil
}

func (s *productService) Get(ctx context.Context, id, callerID uint64, callerRole model.Role) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Hidden listings stay visible to their owner and to staff.
	if p.Hidden && p.UserID != callerID && !callerRole.IsStaff() {
		return nil, ErrNotFound
	}
	if p.UserID != callerID {
		_ = s.repo.IncrementViews(ctx, id)
	}
	return p, nil
}

func (s *productService) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]model.Product, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if f.Status == "" {
		f.Status = model.ProductStatusAvailable
	}
	return s.repo.List(ctx, f, limit, offset)
}

func (s *productService) ListMine(ctx context.Context, ownerID uint64) ([]model.Product, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *productService) ListAll(ctx context.Context, callerRole model.Role, limit, offset int) ([]model.Product, int64, error) {
	if !callerRole.IsStaff() {
		return nil, 0, ErrForbidden
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListAll(ctx, limit, offset)
}

func (s *productService) Update(ctx context.Context, id, callerID uint64, upd ProductUpdate) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.UserID != callerID {
		return nil, ErrForbidden
	}

	if upd.Title != nil {
		t := strings.TrimSpace(*upd.Title)
		if t == "" || len(t) > 200 {
			return nil, invalidInput("title must be a non-empty string of 200 characters or less")
		}
		p.Title = t
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		if *upd.Price == 0 {
			return nil, invalidInput("price must be a positive number")
		}
		p.Price = *upd.Price
	}
	if upd.Images != nil {
		p.Images = *upd.Images
	}
	if upd.Category != nil {
		c := strings.TrimSpace(*upd.Category)
		if c == "" {
			return nil, invalidInput("category must be a non-empty string")
		}
		p.Category = c
	}
	if upd.City != nil {
		c := strings.TrimSpace(*upd.City)
		if c == "" {
			return nil, invalidInput("city must be a non-empty string")
		}
		p.City = c
	}
	if upd.District != nil {
		d := strings.TrimSpace(*upd.District)
		if d == "" {
			p.District = nil
		} else {
			p.District = &d
		}
	}
	if upd.Status != nil {
		st := model.ProductStatus(*upd.Status)
		if !st.Valid() {
			return nil, invalidInput("status must be one of: available, reserved, sold")
		}
		p.Status = st
	}
	if upd.Negotiable != nil {
		p.Negotiable = *upd.Negotiable
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Bump(ctx context.Context, id, callerID uint64) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.UserID != callerID {
		return nil, ErrForbidden
	}
	if p.Status != model.ProductStatusAvailable {
		return nil, invalidInput("only available products can be bumped")
	}

	now := time.Now()
	rows, err := s.repo.BumpIfCooledDown(ctx, id, now, now.Add(-BumpCooldown))
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		remaining := BumpCooldown
		if p.BumpedAt != nil {
			remaining = BumpCooldown - now.Sub(*p.BumpedAt)
		}
		hours := int(math.Ceil(remaining.Hours()))
		if hours < 1 {
			hours = 1
		}
		return nil, &RateLimitedError{HoursRemaining: hours}
	}
	p.BumpedAt = &now
	p.UpdatedAt = now
	return p, nil
}

func (s *productService) SetHidden(ctx context.Context, id uint64, hidden bool, callerRole model.Role) (*model.Product, error) {
	if !callerRole.IsStaff() {
		return nil, ErrForbidden
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.repo.SetHidden(ctx, id, hidden); err != nil {
		return nil, err
	}
	p.Hidden = hidden
	return p, nil
}

// SetStatus is the administrative override; the negotiation engine reserves
// listings through its own transaction.
func (s *productService) SetStatus(ctx context.Context, id uint64, status string, callerRole model.Role) (*model.Product, error) {
	if !callerRole.IsStaff() {
		return nil, ErrForbidden
	}
	st := model.ProductStatus(status)
	if !st.Valid() {
		return nil, invalidInput("status must be one of: available, reserved, sold")
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}
	p.Status = st
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id, callerID uint64, callerRole model.Role) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if p.UserID != callerID && callerRole != model.RoleAdmin {
		return ErrForbidden
	}
	return s.tx.InTx(ctx, func(tx *gorm.DB) error {
		return s.repo.DeleteCascade(ctx, tx, id)
	})
}
