package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fitchain/gymhub/internal/service"
	"fitchain/gymhub/pkg/response"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type SetPaymentRequest struct {
	Active bool `json:"active"`
}

func (h *ClientHandler) ProvisionClient(c *gin.Context) {
	var req NewAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	in, ok := req.toInput()
	if !ok {
		response.BadRequest(c, "unsupported document type")
		return
	}

	client, err := h.clientService.ProvisionClient(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists),
			errors.Is(err, service.ErrPersonDocumentTaken),
			errors.Is(err, service.ErrPersonAlreadyClient):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, "failed to provision client")
		}
		return
	}

	response.Success(c, client)
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			response.NotFound(c, "client not found")
		default:
			response.InternalError(c, "failed to load client")
		}
		return
	}

	response.Success(c, client)
}

func (h *ClientHandler) SetPayment(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req SetPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	client, err := h.clientService.SetPaymentActive(c.Request.Context(), id, req.Active)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			response.NotFound(c, "client not found")
		default:
			response.InternalError(c, "failed to update payment status")
		}
		return
	}

	response.Success(c, client)
}

func (h *ClientHandler) DeactivateClient(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.DeactivateClient(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			response.NotFound(c, "client not found")
		default:
			response.InternalError(c, "failed to deactivate client")
		}
		return
	}

	response.Success(c, nil)
}

func (h *ClientHandler) LinkToBranch(c *gin.Context) {
	clientID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req AssignBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	branchID, ok := parseUUIDField(c, req.BranchID, "branch_id")
	if !ok {
		return
	}

	link, err := h.clientService.LinkToBranch(c.Request.Context(), clientID, branchID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			response.NotFound(c, "client not found")
		case errors.Is(err, service.ErrBranchNotFound):
			response.NotFound(c, "branch not found")
		case errors.Is(err, service.ErrClientAlreadyLinked):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, "failed to link client")
		}
		return
	}

	response.Success(c, link)
}

func (h *ClientHandler) UnlinkFromBranch(c *gin.Context) {
	clientID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	branchID, ok := pathUUID(c, "branch_id")
	if !ok {
		return
	}

	if err := h.clientService.UnlinkFromBranch(c.Request.Context(), clientID, branchID); err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			response.NotFound(c, "client not found")
		case errors.Is(err, service.ErrClientNotLinked):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, "failed to unlink client")
		}
		return
	}

	response.Success(c, nil)
}

// ListByBranch is branch-scoped: the caller must be a super admin or the
// admin assigned to the branch in the path.
func (h *ClientHandler) ListByBranch(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	branchID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	limit, cursor, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.clientService.ListByBranch(c.Request.Context(), callerID, branchID, limit, cursor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.Forbidden(c, "not an admin of this branch")
		default:
			response.InternalError(c, "failed to list clients")
		}
		return
	}

	response.Success(c, page)
}
