package repository

import (
	"context"

	"github.com/google/uuid"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/pkg/pagination"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Admin, error)
	GetByCode(ctx context.Context, code string) (*model.Admin, error)
	GetActiveByBranchID(ctx context.Context, branchID uuid.UUID) (*model.Admin, error)
	GetActiveByPersonID(ctx context.Context, personID uuid.UUID) (*model.Admin, error)
	Update(ctx context.Context, admin *model.Admin) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]model.Admin, error)
}
