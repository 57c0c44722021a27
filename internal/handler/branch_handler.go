package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/service"
	"fitchain/gymhub/pkg/response"
)

type BranchHandler struct {
	branchService service.BranchService
}

func NewBranchHandler(branchService service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

type CreateCityRequest struct {
	Name  string `json:"name" binding:"required"`
	State string `json:"state" binding:"required"`
}

type CreateBranchRequest struct {
	Name        string                 `json:"name" binding:"required"`
	CityName    string                 `json:"city_name" binding:"required"`
	CityState   string                 `json:"city_state" binding:"required"`
	Street      string                 `json:"street" binding:"required"`
	Number      string                 `json:"number" binding:"required"`
	PostalCode  string                 `json:"postal_code"`
	Capacity    int                    `json:"capacity"`
	OpeningHour string                 `json:"opening_hour"`
	ClosingHour string                 `json:"closing_hour"`
	Amenities   map[string]interface{} `json:"amenities"`
}

type UpdateBranchStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *BranchHandler) CreateCity(c *gin.Context) {
	var req CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	city, err := h.branchService.CreateCity(c.Request.Context(), req.Name, req.State)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCityAlreadyExists):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, "failed to create city")
		}
		return
	}

	response.Success(c, city)
}

func (h *BranchHandler) ListCities(c *gin.Context) {
	cities, err := h.branchService.ListCities(c.Request.Context())
	if err != nil {
		response.InternalError(c, "failed to list cities")
		return
	}
	response.Success(c, cities)
}

func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), service.CreateBranchInput{
		Name:        req.Name,
		CityName:    req.CityName,
		CityState:   req.CityState,
		Street:      req.Street,
		Number:      req.Number,
		PostalCode:  req.PostalCode,
		Capacity:    req.Capacity,
		OpeningHour: req.OpeningHour,
		ClosingHour: req.ClosingHour,
		Amenities:   model.JSONMap(req.Amenities),
	})
	if err != nil {
		response.InternalError(c, "failed to create branch")
		return
	}

	response.Success(c, branch)
}

func (h *BranchHandler) GetBranch(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	branch, err := h.branchService.GetBranch(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBranchNotFound):
			response.NotFound(c, "branch not found")
		default:
			response.InternalError(c, "failed to load branch")
		}
		return
	}

	response.Success(c, branch)
}

func (h *BranchHandler) UpdateBranchStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateBranchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	status := model.BranchStatus(req.Status)
	switch status {
	case model.BranchStatusActive, model.BranchStatusInactive, model.BranchStatusMaintenance:
	default:
		response.BadRequest(c, "unsupported branch status")
		return
	}

	branch, err := h.branchService.UpdateBranchStatus(c.Request.Context(), id, status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBranchNotFound):
			response.NotFound(c, "branch not found")
		default:
			response.InternalError(c, "failed to update branch")
		}
		return
	}

	response.Success(c, branch)
}

func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.branchService.DeleteBranch(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrBranchNotFound):
			response.NotFound(c, "branch not found")
		case errors.Is(err, service.ErrBranchHasDependents):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, "failed to delete branch")
		}
		return
	}

	response.Success(c, nil)
}

func (h *BranchHandler) ListBranches(c *gin.Context) {
	limit, cursor, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.branchService.ListBranches(c.Request.Context(), limit, cursor)
	if err != nil {
		response.InternalError(c, "failed to list branches")
		return
	}

	response.Success(c, page)
}
