package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitchain/gymhub/internal/service"
	"fitchain/gymhub/pkg/response"
)

type InvitationHandler struct {
	invitationService service.InvitationService
	clientService     service.ClientService
}

func NewInvitationHandler(invitationService service.InvitationService, clientService service.ClientService) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
		clientService:     clientService,
	}
}

type CreateInvitationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token" binding:"required"`
}

// callerClient resolves the signed-in user to their client record; invitation
// endpoints are client-only.
func (h *InvitationHandler) callerClient(c *gin.Context) (uuid.UUID, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return uuid.Nil, false
	}

	client, err := h.clientService.GetClientByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			response.Forbidden(c, "only clients can manage invitations")
		} else {
			response.InternalError(c, "failed to resolve client")
		}
		return uuid.Nil, false
	}
	return client.ID, true
}

func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	clientID, ok := h.callerClient(c)
	if !ok {
		return
	}

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	invitation, err := h.invitationService.CreateInvitation(c.Request.Context(), clientID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentInactive):
			response.Forbidden(c, err.Error())
		default:
			response.InternalError(c, "failed to create invitation")
		}
		return
	}

	response.Success(c, invitation)
}

func (h *InvitationHandler) CancelInvitation(c *gin.Context) {
	clientID, ok := h.callerClient(c)
	if !ok {
		return
	}
	invitationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	invitation, err := h.invitationService.CancelInvitation(c.Request.Context(), invitationID, clientID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			response.NotFound(c, "invitation not found")
		case errors.Is(err, service.ErrInvitationNotOwned):
			response.Forbidden(c, err.Error())
		case errors.Is(err, service.ErrInvitationNotPending):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, "failed to cancel invitation")
		}
		return
	}

	response.Success(c, invitation)
}

// AcceptInvitation is public: the invitee follows the emailed token before
// they have an account.
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	var req AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	invitation, err := h.invitationService.AcceptInvitation(c.Request.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			response.NotFound(c, "invitation not found")
		case errors.Is(err, service.ErrInvitationNotPending):
			response.Conflict(c, err.Error())
		case errors.Is(err, service.ErrInvitationExpired):
			response.Error(c, 410, 410, err.Error())
		default:
			response.InternalError(c, "failed to accept invitation")
		}
		return
	}

	response.Success(c, invitation)
}

func (h *InvitationHandler) ListMyInvitations(c *gin.Context) {
	clientID, ok := h.callerClient(c)
	if !ok {
		return
	}
	limit, cursor, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.invitationService.ListByInviter(c.Request.Context(), clientID, limit, cursor)
	if err != nil {
		response.InternalError(c, "failed to list invitations")
		return
	}

	response.Success(c, page)
}
