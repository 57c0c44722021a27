package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fitchain/gymhub/internal/service"
	"fitchain/gymhub/pkg/response"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Me returns the aggregated profile of the signed-in user.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "user not found")
		default:
			response.InternalError(c, "failed to load profile")
		}
		return
	}

	response.Success(c, profile)
}
