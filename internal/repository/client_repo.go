package repository

import (
	"context"

	"github.com/google/uuid"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/pkg/pagination"
)

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	// GetByUserID resolves the user's active client record only; rows left
	// behind by deactivation are never returned.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Client, error)
	GetActiveByPersonID(ctx context.Context, personID uuid.UUID) (*model.Client, error)
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByBranch(ctx context.Context, branchID uuid.UUID, limit int, cursor *pagination.Cursor) ([]model.Client, error)
}

type ClientBranchRepository interface {
	Create(ctx context.Context, link *model.ClientBranch) error
	GetActive(ctx context.Context, clientID, branchID uuid.UUID) (*model.ClientBranch, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	ListActiveByClient(ctx context.Context, clientID uuid.UUID) ([]model.ClientBranch, error)
}
