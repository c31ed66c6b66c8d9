package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bazary/bazary-backend/internal/model"
	"github.com/bazary/bazary-backend/internal/repository"
	"gorm.io/gorm"
)

// mannerTempDelta maps a review rating to the reputation adjustment applied
// to the reviewed user.
var mannerTempDelta = map[int]float64{
	5: 0.3,
	4: 0.1,
	3: 0,
	2: -0.2,
	1: -0.5,
}

type ReviewService interface {
	Create(ctx context.Context, reviewerID uint64, rv *model.Review) (*model.Review, error)
	ListForUser(ctx context.Context, reviewedID uint64) ([]model.Review, error)
}

type reviewService struct {
	reviews repository.ReviewRepository
	users   repository.UserRepository
	convs   repository.ConversationRepository
	notify  NotificationService
	tx      repository.TxRunner
}

func NewReviewService(
	reviews repository.ReviewRepository,
	users repository.UserRepository,
	convs repository.ConversationRepository,
	notify NotificationService,
	tx repository.TxRunner,
) ReviewService {
	return &reviewService{reviews: reviews, users: users, convs: convs, notify: notify, tx: tx}
}

// Create inserts the review and applies the manner-temperature delta in one
// transaction, so a failed temperature write cannot leave a review without
// its reputation effect.
func (s *reviewService) Create(ctx context.Context, reviewerID uint64, rv *model.Review) (*model.Review, error) {
	if rv.Rating < 1 || rv.Rating > 5 {
		return nil, invalidInput("rating must be an integer between 1 and 5")
	}
	if reviewerID == rv.ReviewedID {
		return nil, invalidInput("you cannot review yourself")
	}
	rv.ReviewerID = reviewerID

	if _, err := s.users.FindByID(ctx, rv.ReviewedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	exists, err := s.reviews.Exists(ctx, reviewerID, rv.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	// Proof of an actual interaction: the two users must share a
	// conversation about this product, in either role.
	shared, err := s.convs.ExistsForPair(ctx, rv.ProductID, reviewerID, rv.ReviewedID)
	if err != nil {
		return nil, err
	}
	if !shared {
		return nil, ErrForbidden
	}

	delta := mannerTempDelta[rv.Rating]
	err = s.tx.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.reviews.WithTx(tx).Create(ctx, rv); err != nil {
			return err
		}
		if delta != 0 {
			return s.users.WithTx(tx).AdjustMannerTemp(ctx, rv.ReviewedID, delta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("/profile/%d", rv.ReviewedID)
	s.notify.Notify(ctx, rv.ReviewedID, model.NotificationTypeReview,
		"Nouvel avis", "Un utilisateur vous a laissé un avis", &link)
	return rv, nil
}

func (s *reviewService) ListForUser(ctx context.Context, reviewedID uint64) ([]model.Review, error) {
	return s.reviews.ListForUser(ctx, reviewedID)
}
