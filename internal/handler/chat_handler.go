package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"fitchain/gymhub/internal/service"
	"fitchain/gymhub/pkg/response"
)

type ChatHandler struct {
	chatService    service.ChatService
	clientService  service.ClientService
	trainerService service.TrainerService
}

func NewChatHandler(
	chatService service.ChatService,
	clientService service.ClientService,
	trainerService service.TrainerService,
) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		clientService:  clientService,
		trainerService: trainerService,
	}
}

type StartConversationRequest struct {
	TrainerID string `json:"trainer_id" binding:"required,uuid"`
}

type MarkContractRequest struct {
	ValidUntil time.Time `json:"valid_until" binding:"required"`
}

type SendMessageRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

// StartConversation is client-initiated: the signed-in client opens (or
// returns the existing) conversation with a trainer.
func (h *ChatHandler) StartConversation(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var req StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	trainerID, ok := parseUUIDField(c, req.TrainerID, "trainer_id")
	if !ok {
		return
	}

	client, err := h.clientService.GetClientByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			response.Forbidden(c, "only clients can start conversations")
		} else {
			response.InternalError(c, "failed to resolve client")
		}
		return
	}

	conversation, err := h.chatService.GetOrCreateConversation(c.Request.Context(), client.ID, trainerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound):
			response.NotFound(c, "trainer not found")
		default:
			response.InternalError(c, "failed to open conversation")
		}
		return
	}

	response.Success(c, conversation)
}

// MarkContract is trainer-only: it lifts the free-message quota until the
// given valid-until instant.
func (h *ChatHandler) MarkContract(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	conversationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req MarkContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	trainer, err := h.trainerService.GetTrainerByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			response.Forbidden(c, "only trainers can mark contracts")
		} else {
			response.InternalError(c, "failed to resolve trainer")
		}
		return
	}

	conversation, err := h.chatService.MarkContract(c.Request.Context(), conversationID, trainer.ID, req.ValidUntil)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConversationNotFound):
			response.NotFound(c, "conversation not found")
		case errors.Is(err, service.ErrNotParticipant):
			response.Forbidden(c, err.Error())
		case errors.Is(err, service.ErrContractValidUntilPast):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "failed to mark contract")
		}
		return
	}

	response.Success(c, conversation)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	conversationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), conversationID, userID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConversationNotFound):
			response.NotFound(c, "conversation not found")
		case errors.Is(err, service.ErrNotParticipant):
			response.Forbidden(c, err.Error())
		case errors.Is(err, service.ErrConversationBlocked),
			errors.Is(err, service.ErrFreeMessagesExhausted):
			// 402 tells the client app to surface the contract upsell.
			response.Error(c, 402, 402, err.Error())
		default:
			response.InternalError(c, "failed to send message")
		}
		return
	}

	response.Success(c, message)
}

func (h *ChatHandler) MarkMessageRead(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	messageID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	message, err := h.chatService.MarkMessageRead(c.Request.Context(), messageID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			response.NotFound(c, "message not found")
		case errors.Is(err, service.ErrNotParticipant):
			response.Forbidden(c, err.Error())
		default:
			response.InternalError(c, "failed to mark message read")
		}
		return
	}

	response.Success(c, message)
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	conversationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	limit, cursor, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.chatService.ListMessages(c.Request.Context(), conversationID, userID, limit, cursor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConversationNotFound):
			response.NotFound(c, "conversation not found")
		case errors.Is(err, service.ErrNotParticipant):
			response.Forbidden(c, err.Error())
		default:
			response.InternalError(c, "failed to list messages")
		}
		return
	}

	response.Success(c, page)
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	limit, cursor, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.chatService.ListConversationsForUser(c.Request.Context(), userID, limit, cursor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotParticipant):
			response.Forbidden(c, "user has no client or trainer role")
		default:
			response.InternalError(c, "failed to list conversations")
		}
		return
	}

	response.Success(c, page)
}
