package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bazary/bazary-backend/internal/model"
	"github.com/bazary/bazary-backend/internal/repository"
	"gorm.io/gorm"
)

type ConversationWithLast struct {
	Conversation model.Conversation
	LastMessage  *model.Message
}

type ConversationService interface {
	Start(ctx context.Context, productID, buyerID uint64, firstMessage string) (*model.Conversation, error)
	ListByUser(ctx context.Context, userID uint64) ([]ConversationWithLast, error)
	ListMessages(ctx context.Context, convID, userID uint64) ([]model.Message, error)
	PostMessage(ctx context.Context, convID, senderID uint64, content string) (*model.Message, error)
	CountUnread(ctx context.Context, userID uint64) (int64, error)
}

type conversationService struct {
	convs    repository.ConversationRepository
	products repository.ProductRepository
	notify   NotificationService
}

func NewConversationService(convs repository.ConversationRepository, products repository.ProductRepository, notify NotificationService) ConversationService {
	return &conversationService{convs: convs, products: products, notify: notify}
}

// Start finds or creates the buyer's conversation about a product and
// optionally posts an opening message.
func (s *conversationService) Start(ctx context.Context, productID, buyerID uint64, firstMessage string) (*model.Conversation, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if product.UserID == buyerID {
		return nil, invalidInput("cannot start a conversation with yourself")
	}
	cv, err := s.convs.FindOrCreate(ctx, productID, buyerID, product.UserID)
	if err != nil {
		return nil, err
	}
	if firstMessage != "" {
		if _, err := s.PostMessage(ctx, cv.ID, buyerID, firstMessage); err != nil {
			return nil, err
		}
	}
	return cv, nil
}

func (s *conversationService) ListByUser(ctx context.Context, userID uint64) ([]ConversationWithLast, error) {
	convs, err := s.convs.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]ConversationWithLast, 0, len(convs))
	for _, cv := range convs {
		last, _ := s.convs.LastMessage(ctx, cv.ID)
		out = append(out, ConversationWithLast{Conversation: cv, LastMessage: last})
	}
	return out, nil
}

// ListMessages returns the thread and marks the other party's messages read.
func (s *conversationService) ListMessages(ctx context.Context, convID, userID uint64) ([]model.Message, error) {
	cv, err := s.convs.FindByID(ctx, convID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if cv.BuyerID != userID && cv.SellerID != userID {
		return nil, ErrForbidden
	}
	msgs, err := s.convs.ListMessages(ctx, convID)
	if err != nil {
		return nil, err
	}
	_ = s.convs.MarkMessagesRead(ctx, convID, userID)
	return msgs, nil
}

func (s *conversationService) PostMessage(ctx context.Context, convID, senderID uint64, content string) (*model.Message, error) {
	if content == "" {
		return nil, invalidInput("content is required")
	}
	cv, err := s.convs.FindByID(ctx, convID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if cv.BuyerID != senderID && cv.SellerID != senderID {
		return nil, ErrForbidden
	}
	msg := &model.Message{
		ConversationID: convID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.convs.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	_ = s.convs.Touch(ctx, convID)

	recipient := cv.BuyerID
	if senderID == cv.BuyerID {
		recipient = cv.SellerID
	}
	link := fmt.Sprintf("/chat?conversation=%d", convID)
	s.notify.Notify(ctx, recipient, model.NotificationTypeMessage,
		"Nouveau message", content, &link)
	return msg, nil
}

func (s *conversationService) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	return s.convs.CountUnread(ctx, userID)
}
