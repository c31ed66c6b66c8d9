package service

import (
	"context"
	"testing"

	"github.com/bazary/bazary-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFavoriteFixture() (FavoriteService, *fakeProductRepo, *fakeNotificationRepo) {
	favorites := newFakeFavoriteRepo()
	products := newFakeProductRepo()
	notifs := newFakeNotificationRepo()
	svc := NewFavoriteService(favorites, products, NewNotificationService(notifs))
	return svc, products, notifs
}

func TestAddFavoriteNotifiesOwner(t *testing.T) {
	svc, products, notifs := newFavoriteFixture()
	p := products.put(&model.Product{UserID: 1, Title: "Table", Status: model.ProductStatusAvailable})

	_, err := svc.Add(context.Background(), 2, p.ID)
	require.NoError(t, err)

	owner := notifs.forUser(1)
	require.Len(t, owner, 1)
	assert.Equal(t, model.NotificationTypeFavorited, owner[0].Type)
}

func TestAddOwnProductNoNotification(t *testing.T) {
	svc, products, notifs := newFavoriteFixture()
	p := products.put(&model.Product{UserID: 1, Title: "Table", Status: model.ProductStatusAvailable})

	_, err := svc.Add(context.Background(), 1, p.ID)
	require.NoError(t, err)
	assert.Empty(t, notifs.forUser(1))
}

func TestAddFavoriteDuplicateConflicts(t *testing.T) {
	svc, products, _ := newFavoriteFixture()
	p := products.put(&model.Product{UserID: 1, Title: "Table", Status: model.ProductStatusAvailable})

	_, err := svc.Add(context.Background(), 2, p.ID)
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), 2, p.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAddFavoriteUnknownProduct(t *testing.T) {
	svc, _, _ := newFavoriteFixture()

	_, err := svc.Add(context.Background(), 2, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveFavorite(t *testing.T) {
	svc, products, _ := newFavoriteFixture()
	p := products.put(&model.Product{UserID: 1, Title: "Table", Status: model.ProductStatusAvailable})

	_, err := svc.Add(context.Background(), 2, p.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), 2, p.ID))

	err = svc.Remove(context.Background(), 2, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	fav, err := svc.IsFavorited(context.Background(), 2, p.ID)
	require.NoError(t, err)
	assert.False(t, fav)
}
