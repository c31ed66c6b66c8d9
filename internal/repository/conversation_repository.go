package repository

import (
	"context"

	"github.com/bazary/bazary-backend/internal/model"
	"gorm.io/gorm"
)

type ConversationRepository interface {
	FindOrCreate(ctx context.Context, productID, buyerID, sellerID uint64) (*model.Conversation, error)
	FindByUser(ctx context.Context, userID uint64) ([]model.Conversation, error)
	FindByID(ctx context.Context, id uint64) (*model.Conversation, error)
	ExistsForPair(ctx context.Context, productID, a, b uint64) (bool, error)
	CreateMessage(ctx context.Context, msg *model.Message) error
	ListMessages(ctx context.Context, convID uint64) ([]model.Message, error)
	LastMessage(ctx context.Context, convID uint64) (*model.Message, error)
	MarkMessagesRead(ctx context.Context, convID, readerID uint64) error
	CountUnread(ctx context.Context, userID uint64) (int64, error)
	Touch(ctx context.Context, id uint64) error
	WithTx(tx *gorm.DB) ConversationRepository
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) WithTx(tx *gorm.DB) ConversationRepository {
	return &conversationRepository{db: tx}
}

// FindOrCreate is idempotent on (product, buyer, seller); the unique index
// backs it up under concurrent callers.
func (r *conversationRepository) FindOrCreate(ctx context.Context, productID, buyerID, sellerID uint64) (*model.Conversation, error) {
	cv := model.Conversation{ProductID: productID, BuyerID: buyerID, SellerID: sellerID}
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND buyer_id = ? AND seller_id = ?", productID, buyerID, sellerID).
		FirstOrCreate(&cv).Error; err != nil {
		return nil, err
	}
	return &cv, nil
}

func (r *conversationRepository) FindByUser(ctx context.Context, userID uint64) ([]model.Conversation, error) {
	var list []model.Conversation
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? OR buyer_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *conversationRepository) FindByID(ctx context.Context, id uint64) (*model.Conversation, error) {
	var cv model.Conversation
	if err := r.db.WithContext(ctx).First(&cv, id).Error; err != nil {
		return nil, err
	}
	return &cv, nil
}

// ExistsForPair reports whether the two users share a conversation about the
// product in either buyer/seller role.
func (r *conversationRepository) ExistsForPair(ctx context.Context, productID, a, b uint64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Where("product_id = ? AND ((buyer_id = ? AND seller_id = ?) OR (buyer_id = ? AND seller_id = ?))",
			productID, a, b, b, a).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *conversationRepository) CreateMessage(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *conversationRepository) ListMessages(ctx context.Context, convID uint64) ([]model.Message, error) {
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Order("id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *conversationRepository) LastMessage(ctx context.Context, convID uint64) (*model.Message, error) {
	var msg model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Order("id DESC").
		First(&msg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// MarkMessagesRead flags everything the other party sent as read.
func (r *conversationRepository) MarkMessagesRead(ctx context.Context, convID, readerID uint64) error {
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND `read` = ?", convID, readerID, false).
		Update("read", true).Error
}

func (r *conversationRepository) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	convIDs := r.db.Model(&model.Conversation{}).
		Select("id").
		Where("seller_id = ? OR buyer_id = ?", userID, userID)
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("conversation_id IN (?) AND sender_id <> ? AND `read` = ?", convIDs, userID, false).
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *conversationRepository) Touch(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", r.db.NowFunc()).Error
}
