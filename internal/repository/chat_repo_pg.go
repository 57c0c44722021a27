package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/pkg/pagination"
)

type pgChatRepository struct {
	db *gorm.DB
}

func NewPGChatRepository(db *gorm.DB) ChatRepository {
	return &pgChatRepository{db: db}
}

func (r *pgChatRepository) WithTx(ctx context.Context, fn func(tx ChatRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgChatRepository{db: tx})
	})
}

func (r *pgChatRepository) CreateConversation(ctx context.Context, conversation *model.Conversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

func (r *pgChatRepository) GetConversation(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	var conversation model.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *pgChatRepository) GetConversationByPair(ctx context.Context, clientID, trainerID uuid.UUID) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND trainer_id = ?", clientID, trainerID).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *pgChatRepository) UpdateConversation(ctx context.Context, conversation *model.Conversation) error {
	return r.db.WithContext(ctx).Save(conversation).Error
}

func (r *pgChatRepository) ListConversationsByClient(
	ctx context.Context, clientID uuid.UUID, limit int, cursor *pagination.Cursor,
) ([]model.Conversation, error) {
	var conversations []model.Conversation
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Scopes(keyset(cursor)).
		Limit(limit).
		Find(&conversations).Error
	return conversations, err
}

func (r *pgChatRepository) ListConversationsByTrainer(
	ctx context.Context, trainerID uuid.UUID, limit int, cursor *pagination.Cursor,
) ([]model.Conversation, error) {
	var conversations []model.Conversation
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Scopes(keyset(cursor)).
		Limit(limit).
		Find(&conversations).Error
	return conversations, err
}

func (r *pgChatRepository) CreateQuota(ctx context.Context, quota *model.MessageQuota) error {
	return r.db.WithContext(ctx).Create(quota).Error
}

func (r *pgChatRepository) GetQuotaByConversation(ctx context.Context, conversationID uuid.UUID) (*model.MessageQuota, error) {
	var quota model.MessageQuota
	if err := r.db.WithContext(ctx).First(&quota, "conversation_id = ?", conversationID).Error; err != nil {
		return nil, err
	}
	return &quota, nil
}

func (r *pgChatRepository) IncrementQuota(ctx context.Context, conversationID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.MessageQuota{}).
		Where("conversation_id = ?", conversationID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).
		Error
}

func (r *pgChatRepository) CreateMessage(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *pgChatRepository) GetMessage(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	var message model.Message
	if err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *pgChatRepository) UpdateMessage(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Save(message).Error
}

func (r *pgChatRepository) ListMessages(
	ctx context.Context, conversationID uuid.UUID, limit int, cursor *pagination.Cursor,
) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Scopes(keyset(cursor)).
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
