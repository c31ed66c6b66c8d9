package service

import (
	"context"
	"testing"

	"github.com/bazary/bazary-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConversationFixture() (ConversationService, *fakeProductRepo, *fakeConversationRepo, *fakeNotificationRepo) {
	convs := newFakeConversationRepo()
	products := newFakeProductRepo()
	notifs := newFakeNotificationRepo()
	svc := NewConversationService(convs, products, NewNotificationService(notifs))
	return svc, products, convs, notifs
}

func TestStartConversation(t *testing.T) {
	svc, products, _, notifs := newConversationFixture()
	p := products.put(&model.Product{UserID: 1, Title: "Table", Status: model.ProductStatusAvailable})

	cv, err := svc.Start(context.Background(), p.ID, 2, "Bonjour, toujours disponible?")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), cv.BuyerID)
	assert.Equal(t, uint64(1), cv.SellerID)

	seller := notifs.forUser(1)
	require.Len(t, seller, 1)
	assert.Equal(t, model.NotificationTypeMessage, seller[0].Type)
}

func TestStartConversationIsIdempotent(t *testing.T) {
	svc, products, _, _ := newConversationFixture()
	p := products.put(&model.Product{UserID: 1, Title: "Table", Status: model.ProductStatusAvailable})

	first, err := svc.Start(context.Background(), p.ID, 2, "")
	require.NoError(t, err)
	second, err := svc.Start(context.Background(), p.ID, 2, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestStartConversationWithSelfFails(t *testing.T) {
	svc, products, _, _ := newConversationFixture()
	p := products.put(&model.Product{UserID: 1, Title: "Table", Status: model.ProductStatusAvailable})

	_, err := svc.Start(context.Background(), p.ID, 1, "")
	assert.Error(t, err)
}

func TestPostMessageParticipantsOnly(t *testing.T) {
	svc, products, _, _ := newConversationFixture()
	p := products.put(&model.Product{UserID: 1, Title: "Table", Status: model.ProductStatusAvailable})
	cv, err := svc.Start(context.Background(), p.ID, 2, "")
	require.NoError(t, err)

	_, err = svc.PostMessage(context.Background(), cv.ID, 3, "intrusion")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.PostMessage(context.Background(), cv.ID, 1, "Oui, toujours disponible")
	assert.NoError(t, err)
}

func TestPostMessageNotifiesOtherParty(t *testing.T) {
	svc, products, _, notifs := newConversationFixture()
	p := products.put(&model.Product{UserID: 1, Title: "Table", Status: model.ProductStatusAvailable})
	cv, err := svc.Start(context.Background(), p.ID, 2, "")
	require.NoError(t, err)

	_, err = svc.PostMessage(context.Background(), cv.ID, 1, "Réponse du vendeur")
	require.NoError(t, err)

	buyer := notifs.forUser(2)
	require.Len(t, buyer, 1)
	assert.Equal(t, "Réponse du vendeur", buyer[0].Message)
}

func TestListMessagesMarksRead(t *testing.T) {
	svc, products, convs, _ := newConversationFixture()
	p := products.put(&model.Product{UserID: 1, Title: "Table", Status: model.ProductStatusAvailable})
	cv, err := svc.Start(context.Background(), p.ID, 2, "Bonjour")
	require.NoError(t, err)

	unread, err := convs.CountUnread(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	msgs, err := svc.ListMessages(context.Background(), cv.ID, 1)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	unread, err = convs.CountUnread(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestListMessagesForbiddenForOutsider(t *testing.T) {
	svc, products, _, _ := newConversationFixture()
	p := products.put(&model.Product{UserID: 1, Title: "Table", Status: model.ProductStatusAvailable})
	cv, err := svc.Start(context.Background(), p.ID, 2, "Bonjour")
	require.NoError(t, err)

	_, err = svc.ListMessages(context.Background(), cv.ID, 3)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListByUserIncludesLastMessage(t *testing.T) {
	svc, products, _, _ := newConversationFixture()
	p := products.put(&model.Product{UserID: 1, Title: "Table", Status: model.ProductStatusAvailable})
	cv, err := svc.Start(context.Background(), p.ID, 2, "Premier")
	require.NoError(t, err)
	_, err = svc.PostMessage(context.Background(), cv.ID, 2, "Deuxième")
	require.NoError(t, err)

	list, err := svc.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].LastMessage)
	assert.Equal(t, "Deuxième", list[0].LastMessage.Content)
}
