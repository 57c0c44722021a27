package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/observability/metrics"
	"fitchain/gymhub/internal/repository"
	"fitchain/gymhub/pkg/pagination"
)

// ChatService implements the client-trainer messaging rules.
//
// Conversation state machine: OPEN -> CONTRACTED (trainer-only, requires a
// future valid-until) and OPEN -> BLOCKED (system, when a client exhausts the
// free-message quota). Send rule: trainers always succeed; clients succeed
// unconditionally while the contract's valid-until is in the future, otherwise
// while the quota counter is below the free limit, incrementing it per
// accepted send; the first attempt past the limit flips the conversation to
// BLOCKED and rejects the write.
type ChatService interface {
	GetOrCreateConversation(ctx context.Context, clientID, trainerID uuid.UUID) (*model.Conversation, error)
	MarkContract(ctx context.Context, conversationID, trainerID uuid.UUID, validUntil time.Time) (*model.Conversation, error)
	SendMessage(ctx context.Context, conversationID, senderUserID uuid.UUID, body string) (*model.Message, error)
	MarkMessageRead(ctx context.Context, messageID, readerUserID uuid.UUID) (*model.Message, error)
	ListMessages(ctx context.Context, conversationID, requesterUserID uuid.UUID, limit int, cursor *pagination.Cursor) (*pagination.Page[model.Message], error)
	ListConversationsForUser(ctx context.Context, userID uuid.UUID, limit int, cursor *pagination.Cursor) (*pagination.Page[model.Conversation], error)
}

type chatService struct {
	chatRepo    repository.ChatRepository
	clientRepo  repository.ClientRepository
	trainerRepo repository.TrainerRepository
	freeLimit   int
}

func NewChatService(
	chatRepo repository.ChatRepository,
	clientRepo repository.ClientRepository,
	trainerRepo repository.TrainerRepository,
	freeLimit int,
) ChatService {
	return &chatService{
		chatRepo:    chatRepo,
		clientRepo:  clientRepo,
		trainerRepo: trainerRepo,
		freeLimit:   freeLimit,
	}
}

func (s *chatService) GetOrCreateConversation(ctx context.Context, clientID, trainerID uuid.UUID) (*model.Conversation, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	if _, err := s.trainerRepo.GetByID(ctx, trainerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, fmt.Errorf("find trainer: %w", err)
	}

	conversation, err := s.chatRepo.GetConversationByPair(ctx, clientID, trainerID)
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find conversation: %w", err)
	}

	conversation = &model.Conversation{
		ClientID:  clientID,
		TrainerID: trainerID,
		Status:    model.ConversationStatusOpen,
	}
	if err := s.chatRepo.CreateConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	quota := &model.MessageQuota{
		ConversationID: conversation.ID,
		FreeLimit:      s.freeLimit,
	}
	if err := s.chatRepo.CreateQuota(ctx, quota); err != nil {
		return nil, fmt.Errorf("create quota: %w", err)
	}
	return conversation, nil
}

// MarkContract records a trainer-client contract and moves the conversation
// to CONTRACTED. A BLOCKED conversation is unblocked here: signing a contract
// is exactly how a quota-exhausted client regains the ability to write. On an
// already CONTRACTED conversation the call extends valid-until.
func (s *chatService) MarkContract(
	ctx context.Context, conversationID, trainerID uuid.UUID, validUntil time.Time,
) (*model.Conversation, error) {
	conversation, err := s.getConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation.TrainerID != trainerID {
		return nil, ErrNotParticipant
	}
	if !validUntil.After(time.Now()) {
		return nil, ErrContractValidUntilPast
	}

	conversation.Status = model.ConversationStatusContracted
	conversation.ContractValidUntil = &validUntil
	if err := s.chatRepo.UpdateConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("mark contract: %w", err)
	}
	return conversation, nil
}

func (s *chatService) SendMessage(
	ctx context.Context, conversationID, senderUserID uuid.UUID, body string,
) (*model.Message, error) {
	conversation, err := s.getConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	fromTrainer, err := s.resolveSender(ctx, conversation, senderUserID)
	if err != nil {
		return nil, err
	}

	message := &model.Message{
		ConversationID: conversation.ID,
		SenderUserID:   senderUserID,
		Body:           body,
		Status:         model.MessageStatusSent,
	}

	// Trainers are never gated.
	if fromTrainer {
		if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
			return nil, fmt.Errorf("create message: %w", err)
		}
		metrics.ChatMessagesSentTotal.WithLabelValues("trainer").Inc()
		return message, nil
	}

	// An active contract lifts the quota entirely.
	if conversation.ContractValidUntil != nil && conversation.ContractValidUntil.After(time.Now()) {
		if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
			return nil, fmt.Errorf("create message: %w", err)
		}
		metrics.ChatMessagesSentTotal.WithLabelValues("client").Inc()
		return message, nil
	}

	if conversation.Status == model.ConversationStatusBlocked {
		return nil, ErrConversationBlocked
	}

	// Quota path: the counter check, message insert and counter bump commit
	// together. A rejected send flips the conversation to BLOCKED; that flip
	// must survive the rejection, so it is signalled out of the transaction
	// instead of returned as its error.
	exhausted := false
	err = s.chatRepo.WithTx(ctx, func(tx repository.ChatRepository) error {
		quota, err := tx.GetQuotaByConversation(ctx, conversation.ID)
		if err != nil {
			return fmt.Errorf("load quota: %w", err)
		}
		if quota.UsedCount >= quota.FreeLimit {
			exhausted = true
			conversation.Status = model.ConversationStatusBlocked
			return tx.UpdateConversation(ctx, conversation)
		}
		if err := tx.CreateMessage(ctx, message); err != nil {
			return fmt.Errorf("create message: %w", err)
		}
		return tx.IncrementQuota(ctx, conversation.ID)
	})
	if err != nil {
		return nil, err
	}
	if exhausted {
		metrics.ChatQuotaExhaustedTotal.Inc()
		return nil, ErrFreeMessagesExhausted
	}
	metrics.ChatMessagesSentTotal.WithLabelValues("client").Inc()
	return message, nil
}

func (s *chatService) MarkMessageRead(
	ctx context.Context, messageID, readerUserID uuid.UUID,
) (*model.Message, error) {
	message, err := s.chatRepo.GetMessage(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}
	if message.SenderUserID == readerUserID {
		return nil, ErrNotParticipant
	}

	conversation, err := s.getConversation(ctx, message.ConversationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolveSender(ctx, conversation, readerUserID); err != nil {
		return nil, err
	}

	if message.Status == model.MessageStatusRead {
		return message, nil
	}
	now := time.Now()
	message.Status = model.MessageStatusRead
	message.ReadAt = &now
	if err := s.chatRepo.UpdateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}
	return message, nil
}

func (s *chatService) ListMessages(
	ctx context.Context, conversationID, requesterUserID uuid.UUID, limit int, cursor *pagination.Cursor,
) (*pagination.Page[model.Message], error) {
	conversation, err := s.getConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolveSender(ctx, conversation, requesterUserID); err != nil {
		return nil, err
	}
	limit = pagination.ClampLimit(limit)
	messages, err := s.chatRepo.ListMessages(ctx, conversationID, limit+1, cursor)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return pagination.BuildPage(messages, limit, func(m model.Message) (time.Time, uuid.UUID) {
		return m.CreatedAt, m.ID
	}), nil
}

func (s *chatService) ListConversationsForUser(
	ctx context.Context, userID uuid.UUID, limit int, cursor *pagination.Cursor,
) (*pagination.Page[model.Conversation], error) {
	limit = pagination.ClampLimit(limit)

	var (
		conversations []model.Conversation
		err           error
	)
	if client, cerr := s.clientRepo.GetByUserID(ctx, userID); cerr == nil {
		conversations, err = s.chatRepo.ListConversationsByClient(ctx, client.ID, limit+1, cursor)
	} else if trainer, terr := s.trainerRepo.GetByUserID(ctx, userID); terr == nil {
		conversations, err = s.chatRepo.ListConversationsByTrainer(ctx, trainer.ID, limit+1, cursor)
	} else {
		return nil, ErrNotParticipant
	}
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return pagination.BuildPage(conversations, limit, func(c model.Conversation) (time.Time, uuid.UUID) {
		return c.CreatedAt, c.ID
	}), nil
}

func (s *chatService) getConversation(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	conversation, err := s.chatRepo.GetConversation(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	return conversation, nil
}

// resolveSender reports whether userID is the conversation's trainer (true)
// or client (false); anyone else is rejected.
func (s *chatService) resolveSender(
	ctx context.Context, conversation *model.Conversation, userID uuid.UUID,
) (bool, error) {
	if trainer, err := s.trainerRepo.GetByUserID(ctx, userID); err == nil && trainer.ID == conversation.TrainerID {
		return true, nil
	}
	if client, err := s.clientRepo.GetByUserID(ctx, userID); err == nil && client.ID == conversation.ClientID {
		return false, nil
	}
	return false, ErrNotParticipant
}

var _ ChatService = (*chatService)(nil)
