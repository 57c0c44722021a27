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

type TrainerService interface {
	ProvisionTrainer(ctx context.Context, in NewAccountInput, branchID *uuid.UUID, specialties model.JSONMap) (*model.Trainer, error)
	GetTrainer(ctx context.Context, id uuid.UUID) (*model.Trainer, error)
	GetTrainerByUser(ctx context.Context, userID uuid.UUID) (*model.Trainer, error)
	UpdateSchedule(ctx context.Context, trainerID uuid.UUID, schedule model.JSONMap) (*model.Trainer, error)
	UpdateSpecialties(ctx context.Context, trainerID uuid.UUID, specialties model.JSONMap) (*model.Trainer, error)
	AssignBranch(ctx context.Context, trainerID, branchID uuid.UUID) (*model.Trainer, error)
	DeactivateTrainer(ctx context.Context, trainerID uuid.UUID) error
	// Catalog is the active-trainer listing shown to clients.
	Catalog(ctx context.Context, limit int, cursor *pagination.Cursor) (*pagination.Page[model.Trainer], error)
	ListByBranch(ctx context.Context, branchID uuid.UUID, limit int, cursor *pagination.Cursor) (*pagination.Page[model.Trainer], error)
}

type trainerService struct {
	provisioner accountProvisioner
	trainerRepo repository.TrainerRepository
	branchRepo  repository.BranchRepository
	roleRepo    repository.RoleAssignmentRepository
	logger      *zap.Logger
}

func NewTrainerService(
	userRepo repository.UserRepository,
	personRepo repository.PersonRepository,
	roleRepo repository.RoleAssignmentRepository,
	trainerRepo repository.TrainerRepository,
	branchRepo repository.BranchRepository,
	mail MailSender,
	logger *zap.Logger,
) TrainerService {
	return &trainerService{
		provisioner: accountProvisioner{
			userRepo:   userRepo,
			personRepo: personRepo,
			roleRepo:   roleRepo,
			mail:       mail,
			logger:     logger,
		},
		trainerRepo: trainerRepo,
		branchRepo:  branchRepo,
		roleRepo:    roleRepo,
		logger:      logger,
	}
}

func (s *trainerService) ProvisionTrainer(
	ctx context.Context, in NewAccountInput, branchID *uuid.UUID, specialties model.JSONMap,
) (*model.Trainer, error) {
	if branchID != nil {
		if _, err := s.branchRepo.GetByID(ctx, *branchID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBranchNotFound
			}
			return nil, fmt.Errorf("find branch: %w", err)
		}
	}

	acct, err := s.provisioner.provision(ctx, in, model.RoleTrainer, branchID)
	if err != nil {
		return nil, err
	}

	code, err := generateStaffCode(ctx, trainerCodePrefix, func(ctx context.Context, code string) error {
		_, err := s.trainerRepo.GetByEmployeeCode(ctx, code)
		return err
	})
	if err != nil {
		acct.Compensate(ctx, s.logger)
		return nil, err
	}

	trainer := &model.Trainer{
		UserID:       acct.User.ID,
		PersonID:     acct.Person.ID,
		BranchID:     branchID,
		EmployeeCode: code,
		Specialties:  specialties,
		Status:       model.StaffStatusActive,
	}
	if err := s.trainerRepo.Create(ctx, trainer); err != nil {
		acct.Compensate(ctx, s.logger)
		return nil, fmt.Errorf("create trainer: %w", err)
	}

	s.provisioner.sendWelcome(acct)
	trainer.Person = *acct.Person
	return trainer, nil
}

func (s *trainerService) GetTrainer(ctx context.Context, id uuid.UUID) (*model.Trainer, error) {
	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTrainerNotFound
	}
	return trainer, err
}

func (s *trainerService) GetTrainerByUser(ctx context.Context, userID uuid.UUID) (*model.Trainer, error) {
	trainer, err := s.trainerRepo.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTrainerNotFound
	}
	return trainer, err
}

func (s *trainerService) UpdateSchedule(ctx context.Context, trainerID uuid.UUID, schedule model.JSONMap) (*model.Trainer, error) {
	trainer, err := s.GetTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	trainer.Schedule = schedule
	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}
	return trainer, nil
}

func (s *trainerService) UpdateSpecialties(ctx context.Context, trainerID uuid.UUID, specialties model.JSONMap) (*model.Trainer, error) {
	trainer, err := s.GetTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	trainer.Specialties = specialties
	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return nil, fmt.Errorf("update specialties: %w", err)
	}
	return trainer, nil
}

func (s *trainerService) AssignBranch(ctx context.Context, trainerID, branchID uuid.UUID) (*model.Trainer, error) {
	trainer, err := s.GetTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.branchRepo.GetByID(ctx, branchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("find branch: %w", err)
	}
	trainer.BranchID = &branchID
	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return nil, fmt.Errorf("assign trainer branch: %w", err)
	}
	return trainer, nil
}

func (s *trainerService) DeactivateTrainer(ctx context.Context, trainerID uuid.UUID) error {
	trainer, err := s.GetTrainer(ctx, trainerID)
	if err != nil {
		return err
	}
	trainer.Status = model.StaffStatusInactive
	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return fmt.Errorf("deactivate trainer: %w", err)
	}
	return s.roleRepo.DeactivateByUserRole(ctx, trainer.UserID, model.RoleTrainer)
}

func (s *trainerService) Catalog(
	ctx context.Context, limit int, cursor *pagination.Cursor,
) (*pagination.Page[model.Trainer], error) {
	limit = pagination.ClampLimit(limit)
	trainers, err := s.trainerRepo.ListActive(ctx, limit+1, cursor)
	if err != nil {
		return nil, fmt.Errorf("list trainer catalog: %w", err)
	}
	return pagination.BuildPage(trainers, limit, func(t model.Trainer) (time.Time, uuid.UUID) {
		return t.CreatedAt, t.ID
	}), nil
}

func (s *trainerService) ListByBranch(
	ctx context.Context, branchID uuid.UUID, limit int, cursor *pagination.Cursor,
) (*pagination.Page[model.Trainer], error) {
	limit = pagination.ClampLimit(limit)
	trainers, err := s.trainerRepo.ListByBranch(ctx, branchID, limit+1, cursor)
	if err != nil {
		return nil, fmt.Errorf("list trainers by branch: %w", err)
	}
	return pagination.BuildPage(trainers, limit, func(t model.Trainer) (time.Time, uuid.UUID) {
		return t.CreatedAt, t.ID
	}), nil
}

var _ TrainerService = (*trainerService)(nil)
