package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bazary/bazary-backend/internal/model"
	"github.com/bazary/bazary-backend/internal/repository"
	"gorm.io/gorm"
)

type FavoriteService interface {
	Add(ctx context.Context, userID, productID uint64) (*model.Favorite, error)
	Remove(ctx context.Context, userID, productID uint64) error
	ListByUser(ctx context.Context, userID uint64) ([]model.Favorite, error)
	IsFavorited(ctx context.Context, userID, productID uint64) (bool, error)
}

type favoriteService struct {
	favorites repository.FavoriteRepository
	products  repository.ProductRepository
	notify    NotificationService
}

func NewFavoriteService(favorites repository.FavoriteRepository, products repository.ProductRepository, notify NotificationService) FavoriteService {
	return &favoriteService{favorites: favorites, products: products, notify: notify}
}

func (s *favoriteService) Add(ctx context.Context, userID, productID uint64) (*model.Favorite, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	exists, err := s.favorites.Exists(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}
	f := &model.Favorite{UserID: userID, ProductID: productID}
	if err := s.favorites.Create(ctx, f); err != nil {
		return nil, err
	}
	if product.UserID != userID {
		link := fmt.Sprintf("/product/%d", productID)
		s.notify.Notify(ctx, product.UserID, model.NotificationTypeFavorited,
			"Nouveau favori", product.Title, &link)
	}
	return f, nil
}

func (s *favoriteService) Remove(ctx context.Context, userID, productID uint64) error {
	rows, err := s.favorites.Delete(ctx, userID, productID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *favoriteService) ListByUser(ctx context.Context, userID uint64) ([]model.Favorite, error) {
	return s.favorites.ListByUser(ctx, userID)
}

func (s *favoriteService) IsFavorited(ctx context.Context, userID, productID uint64) (bool, error) {
	return s.favorites.Exists(ctx, userID, productID)
}
