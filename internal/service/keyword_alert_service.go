package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bazary/bazary-backend/internal/logger"
	"github.com/bazary/bazary-backend/internal/model"
	"github.com/bazary/bazary-backend/internal/repository"
	"go.uber.org/zap"
)

// MaxKeywordAlerts caps how many alerts a single user may register.
const MaxKeywordAlerts = 30

type KeywordAlertService interface {
	Create(ctx context.Context, userID uint64, keyword string) (*model.KeywordAlert, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.KeywordAlert, error)
	Delete(ctx context.Context, userID, id uint64) error
	NotifyMatches(ctx context.Context, p *model.Product)
}

type keywordAlertService struct {
	alerts repository.KeywordAlertRepository
	notify NotificationService
}

func NewKeywordAlertService(alerts repository.KeywordAlertRepository, notify NotificationService) KeywordAlertService {
	return &keywordAlertService{alerts: alerts, notify: notify}
}

func (s *keywordAlertService) Create(ctx context.Context, userID uint64, keyword string) (*model.KeywordAlert, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if len(keyword) < 2 {
		return nil, invalidInput("keyword must be at least 2 characters")
	}
	cnt, err := s.alerts.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cnt >= MaxKeywordAlerts {
		return nil, invalidInput("maximum %d keyword alerts allowed", MaxKeywordAlerts)
	}
	exists, err := s.alerts.Exists(ctx, userID, keyword)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}
	a := &model.KeywordAlert{UserID: userID, Keyword: keyword}
	if err := s.alerts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *keywordAlertService) ListByUser(ctx context.Context, userID uint64) ([]model.KeywordAlert, error) {
	return s.alerts.ListByUser(ctx, userID)
}

func (s *keywordAlertService) Delete(ctx context.Context, userID, id uint64) error {
	a, err := s.alerts.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if a.UserID != userID {
		return ErrNotFound
	}
	return s.alerts.Delete(ctx, id)
}

// NotifyMatches fans a freshly created product out to every matching
// keyword alert. Best-effort: failures are logged and suppressed so a
// notification problem never fails product creation.
func (s *keywordAlertService) NotifyMatches(ctx context.Context, p *model.Product) {
	matches, err := s.alerts.FindMatchingTitle(ctx, strings.ToLower(p.Title))
	if err != nil {
		logger.L().Warn("keyword alert lookup failed",
			zap.Uint64("productId", p.ID), zap.Error(err))
		return
	}
	link := fmt.Sprintf("/product/%d", p.ID)
	for _, a := range matches {
		if a.UserID == p.UserID {
			continue
		}
		s.notify.Notify(ctx, a.UserID, model.NotificationTypeKeywordMatch,
			"Alerte mot-clé: "+a.Keyword, p.Title, &link)
	}
}
