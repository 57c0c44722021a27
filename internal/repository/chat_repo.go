package repository

import (
	"context"

	"github.com/google/uuid"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/pkg/pagination"
)

type ChatRepository interface {
	// WithTx runs fn against a repository bound to a single database
	// transaction. The quota check, counter bump and message insert of a send
	// all commit or roll back together.
	WithTx(ctx context.Context, fn func(tx ChatRepository) error) error

	CreateConversation(ctx context.Context, conversation *model.Conversation) error
	GetConversation(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
	GetConversationByPair(ctx context.Context, clientID, trainerID uuid.UUID) (*model.Conversation, error)
	UpdateConversation(ctx context.Context, conversation *model.Conversation) error
	ListConversationsByClient(ctx context.Context, clientID uuid.UUID, limit int, cursor *pagination.Cursor) ([]model.Conversation, error)
	ListConversationsByTrainer(ctx context.Context, trainerID uuid.UUID, limit int, cursor *pagination.Cursor) ([]model.Conversation, error)

	CreateQuota(ctx context.Context, quota *model.MessageQuota) error
	GetQuotaByConversation(ctx context.Context, conversationID uuid.UUID) (*model.MessageQuota, error)
	IncrementQuota(ctx context.Context, conversationID uuid.UUID) error

	CreateMessage(ctx context.Context, message *model.Message) error
	GetMessage(ctx context.Context, id uuid.UUID) (*model.Message, error)
	UpdateMessage(ctx context.Context, message *model.Message) error
	ListMessages(ctx context.Context, conversationID uuid.UUID, limit int, cursor *pagination.Cursor) ([]model.Message, error)
}
