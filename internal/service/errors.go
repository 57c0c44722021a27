package service

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserDisabled        = errors.New("user is disabled")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrRefreshTokenInvalid = errors.New("refresh token invalid or revoked")
	ErrEmailAlreadyExists  = errors.New("email already registered")

	ErrPermissionDenied = errors.New("permission denied")

	ErrPersonDocumentTaken = errors.New("document already registered to another person")

	ErrCityAlreadyExists   = errors.New("city already exists")
	ErrBranchNotFound      = errors.New("branch not found")
	ErrBranchHasDependents = errors.New("branch still has active admins, trainers or clients")

	ErrAdminNotFound         = errors.New("admin not found")
	ErrBranchAlreadyHasAdmin = errors.New("branch already has an active admin")
	ErrPersonAlreadyAdmin    = errors.New("person already has an active admin role")

	ErrClientNotFound      = errors.New("client not found")
	ErrPersonAlreadyClient = errors.New("person already has an active client")
	ErrClientAlreadyLinked = errors.New("client already linked to this branch")
	ErrClientNotLinked     = errors.New("client is not linked to this branch")

	ErrTrainerNotFound         = errors.New("trainer not found")
	ErrCodeGenerationExhausted = errors.New("could not generate a unique staff code")

	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationNotPending = errors.New("invitation is no longer pending")
	ErrInvitationExpired    = errors.New("invitation has expired")
	ErrInvitationNotOwned   = errors.New("invitation belongs to another client")
	ErrPaymentInactive      = errors.New("client payment is not active")

	ErrConversationNotFound   = errors.New("conversation not found")
	ErrConversationBlocked    = errors.New("conversation is blocked")
	ErrFreeMessagesExhausted  = errors.New("free message quota exhausted")
	ErrContractValidUntilPast = errors.New("contract valid_until must be in the future")
	ErrNotParticipant         = errors.New("user is not a participant of this conversation")
	ErrMessageNotFound        = errors.New("message not found")

	ErrPostNotFound = errors.New("post not found")
	ErrPostNotOwned = errors.New("post belongs to another trainer")

	ErrWebhookReplayed  = errors.New("webhook delivery already processed")
	ErrWebhookSignature = errors.New("webhook signature mismatch")
)
