package repository

import (
	"context"

	"github.com/google/uuid"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/pkg/pagination"
)

type TrainerRepository interface {
	Create(ctx context.Context, trainer *model.Trainer) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Trainer, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Trainer, error)
	GetByEmployeeCode(ctx context.Context, code string) (*model.Trainer, error)
	Update(ctx context.Context, trainer *model.Trainer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]model.Trainer, error)
	ListByBranch(ctx context.Context, branchID uuid.UUID, limit int, cursor *pagination.Cursor) ([]model.Trainer, error)
	ListActive(ctx context.Context, limit int, cursor *pagination.Cursor) ([]model.Trainer, error)
}
