package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/repository"
	"fitchain/gymhub/pkg/crypto"
	"fitchain/gymhub/pkg/pagination"
)

const invitationTTL = 7 * 24 * time.Hour

type InvitationService interface {
	// CreateInvitation issues a referral from a paying client to a
	// prospective member and mails the token, fire-and-forget.
	CreateInvitation(ctx context.Context, inviterClientID uuid.UUID, inviteeEmail string) (*model.Invitation, error)
	// CancelInvitation succeeds only while PENDING and only for the inviter.
	CancelInvitation(ctx context.Context, invitationID, callerClientID uuid.UUID) (*model.Invitation, error)
	// AcceptInvitation consumes a token once; expired tokens are marked
	// EXPIRED and rejected.
	AcceptInvitation(ctx context.Context, token string) (*model.Invitation, error)
	ListByInviter(ctx context.Context, inviterClientID uuid.UUID, limit int, cursor *pagination.Cursor) (*pagination.Page[model.Invitation], error)
}

type invitationService struct {
	invitationRepo repository.InvitationRepository
	clientRepo     repository.ClientRepository
	mail           MailSender
	logger         *zap.Logger
}

func NewInvitationService(
	invitationRepo repository.InvitationRepository,
	clientRepo repository.ClientRepository,
	mail MailSender,
	logger *zap.Logger,
) InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		clientRepo:     clientRepo,
		mail:           mail,
		logger:         logger,
	}
}

func (s *invitationService) CreateInvitation(
	ctx context.Context, inviterClientID uuid.UUID, inviteeEmail string,
) (*model.Invitation, error) {
	inviter, err := s.clientRepo.GetByID(ctx, inviterClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("find inviter: %w", err)
	}
	if !inviter.IsPaymentActive {
		return nil, ErrPaymentInactive
	}

	token, err := crypto.GenerateInviteToken()
	if err != nil {
		return nil, fmt.Errorf("generate invite token: %w", err)
	}

	invitation := &model.Invitation{
		InviterID:    inviter.ID,
		InviteeEmail: inviteeEmail,
		Token:        token,
		Status:       model.InvitationStatusPending,
		ExpiresAt:    time.Now().Add(invitationTTL),
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	s.sendInvitationMail(invitation)
	return invitation, nil
}

func (s *invitationService) CancelInvitation(
	ctx context.Context, invitationID, callerClientID uuid.UUID,
) (*model.Invitation, error) {
	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	if invitation.InviterID != callerClientID {
		return nil, ErrInvitationNotOwned
	}
	if invitation.Status != model.InvitationStatusPending {
		return nil, ErrInvitationNotPending
	}

	invitation.Status = model.InvitationStatusCancelled
	if err := s.invitationRepo.Update(ctx, invitation); err != nil {
		return nil, fmt.Errorf("cancel invitation: %w", err)
	}
	return invitation, nil
}

func (s *invitationService) AcceptInvitation(ctx context.Context, token string) (*model.Invitation, error) {
	invitation, err := s.invitationRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	if invitation.Status != model.InvitationStatusPending {
		return nil, ErrInvitationNotPending
	}
	if time.Now().After(invitation.ExpiresAt) {
		invitation.Status = model.InvitationStatusExpired
		if err := s.invitationRepo.Update(ctx, invitation); err != nil {
			s.logger.Error("failed to mark invitation expired",
				zap.String("invitation_id", invitation.ID.String()), zap.Error(err))
		}
		return nil, ErrInvitationExpired
	}

	invitation.Status = model.InvitationStatusAccepted
	if err := s.invitationRepo.Update(ctx, invitation); err != nil {
		return nil, fmt.Errorf("accept invitation: %w", err)
	}
	return invitation, nil
}

func (s *invitationService) ListByInviter(
	ctx context.Context, inviterClientID uuid.UUID, limit int, cursor *pagination.Cursor,
) (*pagination.Page[model.Invitation], error) {
	limit = pagination.ClampLimit(limit)
	invitations, err := s.invitationRepo.ListByInviter(ctx, inviterClientID, limit+1, cursor)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return pagination.BuildPage(invitations, limit, func(i model.Invitation) (time.Time, uuid.UUID) {
		return i.CreatedAt, i.ID
	}), nil
}

func (s *invitationService) sendInvitationMail(invitation *model.Invitation) {
	if s.mail == nil {
		return
	}
	go func() {
		body := fmt.Sprintf(
			"You have been invited to join the gym.\n\nUse this code to sign up: %s\nThe invitation expires on %s.\n",
			invitation.Token, invitation.ExpiresAt.Format(time.RFC1123),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mail.Send(ctx, invitation.InviteeEmail, "You're invited", body); err != nil {
			s.logger.Error("failed to send invitation email",
				zap.String("email", invitation.InviteeEmail), zap.Error(err))
		}
	}()
}

var _ InvitationService = (*invitationService)(nil)
