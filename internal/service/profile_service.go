package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/repository"
)

// Profile is the aggregated read model returned to a signed-in user: account,
// person and whichever role-specific records they hold.
type Profile struct {
	User     *model.User            `json:"user"`
	Person   *model.Person          `json:"person,omitempty"`
	Roles    []model.RoleAssignment `json:"roles"`
	Client   *model.Client          `json:"client,omitempty"`
	Trainer  *model.Trainer         `json:"trainer,omitempty"`
	Admin    *model.Admin           `json:"admin,omitempty"`
	Branches []model.ClientBranch   `json:"branches,omitempty"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
}

type profileService struct {
	userRepo         repository.UserRepository
	personRepo       repository.PersonRepository
	roleRepo         repository.RoleAssignmentRepository
	clientRepo       repository.ClientRepository
	clientBranchRepo repository.ClientBranchRepository
	trainerRepo      repository.TrainerRepository
	adminRepo        repository.AdminRepository
}

func NewProfileService(
	userRepo repository.UserRepository,
	personRepo repository.PersonRepository,
	roleRepo repository.RoleAssignmentRepository,
	clientRepo repository.ClientRepository,
	clientBranchRepo repository.ClientBranchRepository,
	trainerRepo repository.TrainerRepository,
	adminRepo repository.AdminRepository,
) ProfileService {
	return &profileService{
		userRepo:         userRepo,
		personRepo:       personRepo,
		roleRepo:         roleRepo,
		clientRepo:       clientRepo,
		clientBranchRepo: clientBranchRepo,
		trainerRepo:      trainerRepo,
		adminRepo:        adminRepo,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	profile := &Profile{User: user}

	if person, err := s.personRepo.GetByUserID(ctx, userID); err == nil {
		profile.Person = person
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find person: %w", err)
	}

	roles, err := s.roleRepo.ListActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	profile.Roles = roles

	for _, role := range roles {
		switch role.Role {
		case model.RoleClient:
			client, err := s.clientRepo.GetByUserID(ctx, userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return nil, fmt.Errorf("find client: %w", err)
			}
			profile.Client = client
			links, err := s.clientBranchRepo.ListActiveByClient(ctx, client.ID)
			if err != nil {
				return nil, fmt.Errorf("list client branches: %w", err)
			}
			profile.Branches = links
		case model.RoleTrainer:
			trainer, err := s.trainerRepo.GetByUserID(ctx, userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return nil, fmt.Errorf("find trainer: %w", err)
			}
			profile.Trainer = trainer
		case model.RoleAdmin:
			admin, err := s.adminRepo.GetByUserID(ctx, userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return nil, fmt.Errorf("find admin: %w", err)
			}
			profile.Admin = admin
		}
	}
	return profile, nil
}

var _ ProfileService = (*profileService)(nil)
