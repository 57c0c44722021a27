package service

import (
	"context"

	"github.com/google/uuid"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/repository"
)

// Authorization predicates are pure functions over the caller's active role
// assignments. The service below re-derives those assignments from the
// database on every call; nothing is cached in the token beyond the subject.

func HasRole(roles []model.RoleAssignment, role model.Role) bool {
	for _, r := range roles {
		if r.Active && r.Role == role {
			return true
		}
	}
	return false
}

func IsSuperAdmin(roles []model.RoleAssignment) bool {
	return HasRole(roles, model.RoleSuperAdmin)
}

func IsAdmin(roles []model.RoleAssignment) bool {
	return HasRole(roles, model.RoleAdmin) || IsSuperAdmin(roles)
}

// CanManageBranch reports whether the caller may administer the given branch:
// super admins always, admins only when their assignment is scoped to it.
func CanManageBranch(roles []model.RoleAssignment, branchID uuid.UUID) bool {
	if IsSuperAdmin(roles) {
		return true
	}
	for _, r := range roles {
		if r.Active && r.Role == model.RoleAdmin && r.BranchID != nil && *r.BranchID == branchID {
			return true
		}
	}
	return false
}

type AuthzService interface {
	ActiveRoles(ctx context.Context, userID uuid.UUID) ([]model.RoleAssignment, error)
	RequireSuperAdmin(ctx context.Context, userID uuid.UUID) error
	RequireAdmin(ctx context.Context, userID uuid.UUID) error
	RequireBranchAdmin(ctx context.Context, userID, branchID uuid.UUID) error
}

type authzService struct {
	roleRepo repository.RoleAssignmentRepository
}

func NewAuthzService(roleRepo repository.RoleAssignmentRepository) AuthzService {
	return &authzService{roleRepo: roleRepo}
}

func (s *authzService) ActiveRoles(ctx context.Context, userID uuid.UUID) ([]model.RoleAssignment, error) {
	return s.roleRepo.ListActiveByUserID(ctx, userID)
}

func (s *authzService) RequireSuperAdmin(ctx context.Context, userID uuid.UUID) error {
	roles, err := s.roleRepo.ListActiveByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !IsSuperAdmin(roles) {
		return ErrPermissionDenied
	}
	return nil
}

func (s *authzService) RequireAdmin(ctx context.Context, userID uuid.UUID) error {
	roles, err := s.roleRepo.ListActiveByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !IsAdmin(roles) {
		return ErrPermissionDenied
	}
	return nil
}

func (s *authzService) RequireBranchAdmin(ctx context.Context, userID, branchID uuid.UUID) error {
	roles, err := s.roleRepo.ListActiveByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !CanManageBranch(roles, branchID) {
		return ErrPermissionDenied
	}
	return nil
}

var _ AuthzService = (*authzService)(nil)
