package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/service"
	"fitchain/gymhub/pkg/response"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// NewAccountRequest is the shared payload of the admin, trainer and client
// provisioning endpoints.
type NewAccountRequest struct {
	Email          string     `json:"email" binding:"required,email"`
	FirstName      string     `json:"first_name" binding:"required"`
	LastName       string     `json:"last_name" binding:"required"`
	DocumentType   string     `json:"document_type" binding:"required"`
	DocumentNumber string     `json:"document_number" binding:"required"`
	Phone          string     `json:"phone"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
}

func (r NewAccountRequest) toInput() (service.NewAccountInput, bool) {
	docType := model.DocumentType(r.DocumentType)
	switch docType {
	case model.DocumentTypeNationalID, model.DocumentTypePassport, model.DocumentTypeDriverLic:
	default:
		return service.NewAccountInput{}, false
	}
	return service.NewAccountInput{
		Email:          r.Email,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		DocumentType:   docType,
		DocumentNumber: r.DocumentNumber,
		Phone:          r.Phone,
		BirthDate:      r.BirthDate,
	}, true
}

type AssignBranchRequest struct {
	BranchID string `json:"branch_id" binding:"required,uuid"`
}

func (h *AdminHandler) ProvisionAdmin(c *gin.Context) {
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

	admin, err := h.adminService.ProvisionAdmin(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists),
			errors.Is(err, service.ErrPersonDocumentTaken),
			errors.Is(err, service.ErrPersonAlreadyAdmin):
			response.Conflict(c, err.Error())
		case errors.Is(err, service.ErrCodeGenerationExhausted):
			response.InternalError(c, err.Error())
		default:
			response.InternalError(c, "failed to provision admin")
		}
		return
	}

	response.Success(c, admin)
}

func (h *AdminHandler) GetAdmin(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	admin, err := h.adminService.GetAdmin(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			response.NotFound(c, "admin not found")
		default:
			response.InternalError(c, "failed to load admin")
		}
		return
	}

	response.Success(c, admin)
}

func (h *AdminHandler) AssignToBranch(c *gin.Context) {
	adminID, ok := pathUUID(c, "id")
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

	admin, err := h.adminService.AssignToBranch(c.Request.Context(), adminID, branchID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			response.NotFound(c, "admin not found")
		case errors.Is(err, service.ErrBranchNotFound):
			response.NotFound(c, "branch not found")
		case errors.Is(err, service.ErrBranchAlreadyHasAdmin):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, "failed to assign admin")
		}
		return
	}

	response.Success(c, admin)
}

func (h *AdminHandler) RevokeFromBranch(c *gin.Context) {
	adminID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	admin, err := h.adminService.RevokeFromBranch(c.Request.Context(), adminID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			response.NotFound(c, "admin not found")
		default:
			response.InternalError(c, "failed to revoke admin")
		}
		return
	}

	response.Success(c, admin)
}

func (h *AdminHandler) DeactivateAdmin(c *gin.Context) {
	adminID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeactivateAdmin(c.Request.Context(), adminID); err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			response.NotFound(c, "admin not found")
		default:
			response.InternalError(c, "failed to deactivate admin")
		}
		return
	}

	response.Success(c, nil)
}

func (h *AdminHandler) ListAdmins(c *gin.Context) {
	limit, cursor, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.adminService.ListAdmins(c.Request.Context(), limit, cursor)
	if err != nil {
		response.InternalError(c, "failed to list admins")
		return
	}

	response.Success(c, page)
}
