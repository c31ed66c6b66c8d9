package service

import (
	"context"
	"testing"

	"github.com/bazary/bazary-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewFixture() (ReviewService, *fakeUserRepo, *fakeConversationRepo, *fakeNotificationRepo) {
	reviews := newFakeReviewRepo()
	users := newFakeUserRepo()
	convs := newFakeConversationRepo()
	notifs := newFakeNotificationRepo()
	svc := NewReviewService(reviews, users, convs, NewNotificationService(notifs), fakeTxRunner{})
	return svc, users, convs, notifs
}

// seedPair creates two users who share a conversation about product 10,
// which is the precondition for leaving a review.
func seedPair(users *fakeUserRepo, convs *fakeConversationRepo, temp float64) {
	users.put(&model.User{ID: 1, Name: "Naina", MannerTemp: model.DefaultMannerTemp})
	users.put(&model.User{ID: 2, Name: "Fara", MannerTemp: temp})
	_, _ = convs.FindOrCreate(context.Background(), 10, 1, 2)
}

func TestCreateReviewAdjustsMannerTemp(t *testing.T) {
	cases := []struct {
		rating   int
		expected float64
	}{
		{5, 36.8},
		{4, 36.6},
		{3, 36.5},
		{2, 36.3},
		{1, 36.0},
	}
	for _, tc := range cases {
		svc, users, convs, _ := newReviewFixture()
		seedPair(users, convs, model.DefaultMannerTemp)

		_, err := svc.Create(context.Background(), 1, &model.Review{
			ReviewedID: 2, ProductID: 10, Rating: tc.rating,
		})
		require.NoError(t, err, "rating %d", tc.rating)

		u, err := users.FindByID(context.Background(), 2)
		require.NoError(t, err)
		assert.InDelta(t, tc.expected, u.MannerTemp, 0.0001, "rating %d", tc.rating)
	}
}

func TestCreateReviewClampsTemperature(t *testing.T) {
	svc, users, convs, _ := newReviewFixture()
	seedPair(users, convs, 0.2)

	_, err := svc.Create(context.Background(), 1, &model.Review{
		ReviewedID: 2, ProductID: 10, Rating: 1,
	})
	require.NoError(t, err)

	u, err := users.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, model.MannerTempMin, u.MannerTemp)

	svc2, users2, convs2, _ := newReviewFixture()
	seedPair(users2, convs2, 98.9)

	_, err = svc2.Create(context.Background(), 1, &model.Review{
		ReviewedID: 2, ProductID: 10, Rating: 5,
	})
	require.NoError(t, err)

	u, err = users2.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, model.MannerTempMax, u.MannerTemp)
}

func TestCreateReviewRequiresSharedConversation(t *testing.T) {
	svc, users, _, _ := newReviewFixture()
	users.put(&model.User{ID: 1, Name: "Naina"})
	users.put(&model.User{ID: 2, Name: "Fara"})

	_, err := svc.Create(context.Background(), 1, &model.Review{
		ReviewedID: 2, ProductID: 10, Rating: 5,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateReviewSelfReviewFails(t *testing.T) {
	svc, users, convs, _ := newReviewFixture()
	seedPair(users, convs, model.DefaultMannerTemp)

	_, err := svc.Create(context.Background(), 1, &model.Review{
		ReviewedID: 1, ProductID: 10, Rating: 5,
	})
	assert.Error(t, err)
}

func TestCreateReviewDuplicateConflicts(t *testing.T) {
	svc, users, convs, _ := newReviewFixture()
	seedPair(users, convs, model.DefaultMannerTemp)

	_, err := svc.Create(context.Background(), 1, &model.Review{
		ReviewedID: 2, ProductID: 10, Rating: 5,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 1, &model.Review{
		ReviewedID: 2, ProductID: 10, Rating: 3,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateReviewInvalidRating(t *testing.T) {
	svc, users, convs, _ := newReviewFixture()
	seedPair(users, convs, model.DefaultMannerTemp)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), 1, &model.Review{
			ReviewedID: 2, ProductID: 10, Rating: rating,
		})
		assert.Error(t, err, "rating %d", rating)
	}
}

func TestCreateReviewNotifiesReviewed(t *testing.T) {
	svc, users, convs, notifs := newReviewFixture()
	seedPair(users, convs, model.DefaultMannerTemp)

	_, err := svc.Create(context.Background(), 1, &model.Review{
		ReviewedID: 2, ProductID: 10, Rating: 4,
	})
	require.NoError(t, err)

	got := notifs.forUser(2)
	require.Len(t, got, 1)
	assert.Equal(t, model.NotificationTypeReview, got[0].Type)
}
