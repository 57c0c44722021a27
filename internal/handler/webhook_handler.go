package handler

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"fitchain/gymhub/internal/service"
	"fitchain/gymhub/pkg/response"
)

// WebhookHandler receives user-provisioning events pushed by the external
// identity provider. The endpoint is unauthenticated; integrity comes from
// the HMAC signature header and the per-delivery replay check.
type WebhookHandler struct {
	webhookService service.WebhookService
}

func NewWebhookHandler(webhookService service.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

type identityEventPayload struct {
	DeliveryID string `json:"delivery_id" binding:"required"`
	Subject    string `json:"subject" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
}

func (h *WebhookHandler) IdentityEvent(c *gin.Context) {
	signature := c.GetHeader("X-Webhook-Signature")
	if signature == "" {
		response.Unauthorized(c, "missing signature header")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "unreadable request body")
		return
	}

	if err := h.webhookService.VerifySignature(body, signature); err != nil {
		response.Unauthorized(c, "signature mismatch")
		return
	}

	var payload identityEventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		response.BadRequest(c, "invalid payload: "+err.Error())
		return
	}
	if payload.DeliveryID == "" || payload.Subject == "" || payload.Email == "" {
		response.BadRequest(c, "delivery_id, subject and email are required")
		return
	}

	user, err := h.webhookService.ProvisionExternalUser(c.Request.Context(), payload.DeliveryID, payload.Subject, payload.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWebhookReplayed):
			// Replays are acknowledged so the provider stops retrying.
			response.Success(c, gin.H{"status": "already_processed"})
		case errors.Is(err, service.ErrEmailAlreadyExists):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, "provisioning failed")
		}
		return
	}

	response.Success(c, gin.H{"user_id": user.ID})
}
