package repository

import (
	"context"

	"github.com/google/uuid"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/pkg/pagination"
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation *model.Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error)
	GetByToken(ctx context.Context, token string) (*model.Invitation, error)
	Update(ctx context.Context, invitation *model.Invitation) error
	ListByInviter(ctx context.Context, inviterID uuid.UUID, limit int, cursor *pagination.Cursor) ([]model.Invitation, error)
}
