package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
)

type pgRoleAssignmentRepository struct {
	db *gorm.DB
}

func NewPGRoleAssignmentRepository(db *gorm.DB) RoleAssignmentRepository {
	return &pgRoleAssignmentRepository{db: db}
}

func (r *pgRoleAssignmentRepository) Create(ctx context.Context, assignment *model.RoleAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *pgRoleAssignmentRepository) ListActiveByUserID(ctx context.Context, userID uuid.UUID) ([]model.RoleAssignment, error) {
	var assignments []model.RoleAssignment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active", userID).
		Find(&assignments).Error
	return assignments, err
}

func (r *pgRoleAssignmentRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.RoleAssignment{}).
		Where("id = ?", id).
		Update("active", false).
		Error
}

func (r *pgRoleAssignmentRepository) DeactivateByUserRole(ctx context.Context, userID uuid.UUID, role model.Role) error {
	return r.db.WithContext(ctx).
		Model(&model.RoleAssignment{}).
		Where("user_id = ? AND role = ? AND active", userID, role).
		Update("active", false).
		Error
}

func (r *pgRoleAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RoleAssignment{}, "id = ?", id).Error
}
