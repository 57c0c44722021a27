package repository

import (
	"context"

	"github.com/google/uuid"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/pkg/pagination"
)

type CityRepository interface {
	Create(ctx context.Context, city *model.City) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.City, error)
	GetByNameAndState(ctx context.Context, name, state string) (*model.City, error)
	List(ctx context.Context) ([]model.City, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error)
	Update(ctx context.Context, address *model.Address) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BranchRepository interface {
	Create(ctx context.Context, branch *model.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Branch, error)
	Update(ctx context.Context, branch *model.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]model.Branch, error)
	CountActiveDependents(ctx context.Context, branchID uuid.UUID) (int64, error)
}
