package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/service"
	"fitchain/gymhub/pkg/response"
)

type TrainerHandler struct {
	trainerService service.TrainerService
}

func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

type ProvisionTrainerRequest struct {
	NewAccountRequest
	BranchID    string                 `json:"branch_id"`
	Specialties map[string]interface{} `json:"specialties"`
}

type UpdateScheduleRequest struct {
	Schedule map[string]interface{} `json:"schedule" binding:"required"`
}

type UpdateSpecialtiesRequest struct {
	Specialties map[string]interface{} `json:"specialties" binding:"required"`
}

func (h *TrainerHandler) ProvisionTrainer(c *gin.Context) {
	var req ProvisionTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	in, ok := req.toInput()
	if !ok {
		response.BadRequest(c, "unsupported document type")
		return
	}

	var branchID *uuid.UUID
	if req.BranchID != "" {
		id, ok := parseUUIDField(c, req.BranchID, "branch_id")
		if !ok {
			return
		}
		branchID = &id
	}

	trainer, err := h.trainerService.ProvisionTrainer(c.Request.Context(), in, branchID, model.JSONMap(req.Specialties))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists),
			errors.Is(err, service.ErrPersonDocumentTaken):
			response.Conflict(c, err.Error())
		case errors.Is(err, service.ErrBranchNotFound):
			response.NotFound(c, "branch not found")
		case errors.Is(err, service.ErrCodeGenerationExhausted):
			response.InternalError(c, err.Error())
		default:
			response.InternalError(c, "failed to provision trainer")
		}
		return
	}

	response.Success(c, trainer)
}

func (h *TrainerHandler) GetTrainer(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	trainer, err := h.trainerService.GetTrainer(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound):
			response.NotFound(c, "trainer not found")
		default:
			response.InternalError(c, "failed to load trainer")
		}
		return
	}

	response.Success(c, trainer)
}

func (h *TrainerHandler) UpdateSchedule(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	trainer, err := h.trainerService.UpdateSchedule(c.Request.Context(), id, model.JSONMap(req.Schedule))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound):
			response.NotFound(c, "trainer not found")
		default:
			response.InternalError(c, "failed to update schedule")
		}
		return
	}

	response.Success(c, trainer)
}

func (h *TrainerHandler) UpdateSpecialties(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateSpecialtiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	trainer, err := h.trainerService.UpdateSpecialties(c.Request.Context(), id, model.JSONMap(req.Specialties))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound):
			response.NotFound(c, "trainer not found")
		default:
			response.InternalError(c, "failed to update specialties")
		}
		return
	}

	response.Success(c, trainer)
}

func (h *TrainerHandler) AssignBranch(c *gin.Context) {
	trainerID, ok := pathUUID(c, "id")
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

	trainer, err := h.trainerService.AssignBranch(c.Request.Context(), trainerID, branchID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound):
			response.NotFound(c, "trainer not found")
		case errors.Is(err, service.ErrBranchNotFound):
			response.NotFound(c, "branch not found")
		default:
			response.InternalError(c, "failed to assign trainer")
		}
		return
	}

	response.Success(c, trainer)
}

func (h *TrainerHandler) DeactivateTrainer(c *gin.Context) {
	trainerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.trainerService.DeactivateTrainer(c.Request.Context(), trainerID); err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound):
			response.NotFound(c, "trainer not found")
		default:
			response.InternalError(c, "failed to deactivate trainer")
		}
		return
	}

	response.Success(c, nil)
}

// Catalog is the public trainer listing available to every signed-in user.
func (h *TrainerHandler) Catalog(c *gin.Context) {
	limit, cursor, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.trainerService.Catalog(c.Request.Context(), limit, cursor)
	if err != nil {
		response.InternalError(c, "failed to list trainers")
		return
	}

	response.Success(c, page)
}

func (h *TrainerHandler) ListByBranch(c *gin.Context) {
	branchID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	limit, cursor, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.trainerService.ListByBranch(c.Request.Context(), branchID, limit, cursor)
	if err != nil {
		response.InternalError(c, "failed to list trainers")
		return
	}

	response.Success(c, page)
}
