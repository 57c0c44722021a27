package repository

import (
	"context"

	"github.com/google/uuid"

	"fitchain/gymhub/internal/model"
)

type RoleAssignmentRepository interface {
	Create(ctx context.Context, assignment *model.RoleAssignment) error
	ListActiveByUserID(ctx context.Context, userID uuid.UUID) ([]model.RoleAssignment, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	DeactivateByUserRole(ctx context.Context, userID uuid.UUID, role model.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}
