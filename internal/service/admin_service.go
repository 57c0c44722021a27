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
	"fitchain/gymhub/pkg/pagination"
)

type AdminService interface {
	// ProvisionAdmin creates the full account (user with temporary password,
	// person, ADMIN role, admin row) and mails the credentials.
	ProvisionAdmin(ctx context.Context, in NewAccountInput) (*model.Admin, error)
	GetAdmin(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	AssignToBranch(ctx context.Context, adminID, branchID uuid.UUID) (*model.Admin, error)
	RevokeFromBranch(ctx context.Context, adminID uuid.UUID) (*model.Admin, error)
	DeactivateAdmin(ctx context.Context, adminID uuid.UUID) error
	ListAdmins(ctx context.Context, limit int, cursor *pagination.Cursor) (*pagination.Page[model.Admin], error)
}

type adminService struct {
	provisioner accountProvisioner
	adminRepo   repository.AdminRepository
	branchRepo  repository.BranchRepository
	roleRepo    repository.RoleAssignmentRepository
	logger      *zap.Logger
}

func NewAdminService(
	userRepo repository.UserRepository,
	personRepo repository.PersonRepository,
	roleRepo repository.RoleAssignmentRepository,
	adminRepo repository.AdminRepository,
	branchRepo repository.BranchRepository,
	mail MailSender,
	logger *zap.Logger,
) AdminService {
	return &adminService{
		provisioner: accountProvisioner{
			userRepo:   userRepo,
			personRepo: personRepo,
			roleRepo:   roleRepo,
			mail:       mail,
			logger:     logger,
		},
		adminRepo:  adminRepo,
		branchRepo: branchRepo,
		roleRepo:   roleRepo,
		logger:     logger,
	}
}

func (s *adminService) ProvisionAdmin(ctx context.Context, in NewAccountInput) (*model.Admin, error) {
	acct, err := s.provisioner.provision(ctx, in, model.RoleAdmin, nil)
	if err != nil {
		return nil, err
	}

	code, err := generateStaffCode(ctx, adminCodePrefix, func(ctx context.Context, code string) error {
		_, err := s.adminRepo.GetByCode(ctx, code)
		return err
	})
	if err != nil {
		acct.Compensate(ctx, s.logger)
		return nil, err
	}

	admin := &model.Admin{
		UserID:    acct.User.ID,
		PersonID:  acct.Person.ID,
		AdminCode: code,
		Status:    model.StaffStatusActive,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		acct.Compensate(ctx, s.logger)
		return nil, fmt.Errorf("create admin: %w", err)
	}

	s.provisioner.sendWelcome(acct)
	admin.Person = *acct.Person
	return admin, nil
}

func (s *adminService) GetAdmin(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	return admin, err
}

// AssignToBranch enforces the soft 1:1 invariant: a branch holds at most one
// active admin at a time. The partial unique index on admins(branch_id)
// backs this check against racing writers.
func (s *adminService) AssignToBranch(ctx context.Context, adminID, branchID uuid.UUID) (*model.Admin, error) {
	admin, err := s.GetAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	if _, err := s.branchRepo.GetByID(ctx, branchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("find branch: %w", err)
	}

	current, err := s.adminRepo.GetActiveByBranchID(ctx, branchID)
	if err == nil && current.ID != admin.ID {
		return nil, ErrBranchAlreadyHasAdmin
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check branch admin: %w", err)
	}

	admin.BranchID = &branchID
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, fmt.Errorf("assign admin: %w", err)
	}
	if err := s.rescopeRole(ctx, admin.UserID, &branchID); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *adminService) RevokeFromBranch(ctx context.Context, adminID uuid.UUID) (*model.Admin, error) {
	admin, err := s.GetAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	admin.BranchID = nil
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, fmt.Errorf("revoke admin: %w", err)
	}
	if err := s.rescopeRole(ctx, admin.UserID, nil); err != nil {
		return nil, err
	}
	return admin, nil
}

// rescopeRole swaps the user's active ADMIN assignment for one scoped to the
// given branch, keeping role derivation and the admin row in agreement.
func (s *adminService) rescopeRole(ctx context.Context, userID uuid.UUID, branchID *uuid.UUID) error {
	if err := s.roleRepo.DeactivateByUserRole(ctx, userID, model.RoleAdmin); err != nil {
		return fmt.Errorf("deactivate admin role: %w", err)
	}
	assignment := &model.RoleAssignment{
		UserID:   userID,
		Role:     model.RoleAdmin,
		BranchID: branchID,
		Active:   true,
	}
	if err := s.roleRepo.Create(ctx, assignment); err != nil {
		return fmt.Errorf("create admin role: %w", err)
	}
	return nil
}

func (s *adminService) DeactivateAdmin(ctx context.Context, adminID uuid.UUID) error {
	admin, err := s.GetAdmin(ctx, adminID)
	if err != nil {
		return err
	}
	admin.Status = model.StaffStatusInactive
	admin.BranchID = nil
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return fmt.Errorf("deactivate admin: %w", err)
	}
	return s.roleRepo.DeactivateByUserRole(ctx, admin.UserID, model.RoleAdmin)
}

func (s *adminService) ListAdmins(
	ctx context.Context, limit int, cursor *pagination.Cursor,
) (*pagination.Page[model.Admin], error) {
	limit = pagination.ClampLimit(limit)
	admins, err := s.adminRepo.List(ctx, limit+1, cursor)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return pagination.BuildPage(admins, limit, func(a model.Admin) (time.Time, uuid.UUID) {
		return a.CreatedAt, a.ID
	}), nil
}

var _ AdminService = (*adminService)(nil)
