package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/repository"
	"fitchain/gymhub/pkg/pagination"
)

type CreateBranchInput struct {
	Name        string
	CityName    string
	CityState   string
	Street      string
	Number      string
	PostalCode  string
	Capacity    int
	OpeningHour string
	ClosingHour string
	Amenities   model.JSONMap
}

type BranchService interface {
	CreateCity(ctx context.Context, name, state string) (*model.City, error)
	ListCities(ctx context.Context) ([]model.City, error)

	CreateBranch(ctx context.Context, in CreateBranchInput) (*model.Branch, error)
	GetBranch(ctx context.Context, id uuid.UUID) (*model.Branch, error)
	UpdateBranchStatus(ctx context.Context, id uuid.UUID, status model.BranchStatus) (*model.Branch, error)
	DeleteBranch(ctx context.Context, id uuid.UUID) error
	ListBranches(ctx context.Context, limit int, cursor *pagination.Cursor) (*pagination.Page[model.Branch], error)
}

type branchService struct {
	cityRepo    repository.CityRepository
	addressRepo repository.AddressRepository
	branchRepo  repository.BranchRepository
}

func NewBranchService(
	cityRepo repository.CityRepository,
	addressRepo repository.AddressRepository,
	branchRepo repository.BranchRepository,
) BranchService {
	return &branchService{
		cityRepo:    cityRepo,
		addressRepo: addressRepo,
		branchRepo:  branchRepo,
	}
}

func (s *branchService) CreateCity(ctx context.Context, name, state string) (*model.City, error) {
	if _, err := s.cityRepo.GetByNameAndState(ctx, name, state); err == nil {
		return nil, ErrCityAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check city: %w", err)
	}

	city := &model.City{Name: name, State: state}
	if err := s.cityRepo.Create(ctx, city); err != nil {
		return nil, fmt.Errorf("create city: %w", err)
	}
	return city, nil
}

func (s *branchService) ListCities(ctx context.Context) ([]model.City, error) {
	return s.cityRepo.List(ctx)
}

// CreateBranch creates the city (if new), address and branch in one flow.
func (s *branchService) CreateBranch(ctx context.Context, in CreateBranchInput) (*model.Branch, error) {
	city, err := s.cityRepo.GetByNameAndState(ctx, in.CityName, in.CityState)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		city = &model.City{Name: in.CityName, State: in.CityState}
		if err := s.cityRepo.Create(ctx, city); err != nil {
			return nil, fmt.Errorf("create city: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("find city: %w", err)
	}

	address := &model.Address{
		CityID:     city.ID,
		Street:     in.Street,
		Number:     in.Number,
		PostalCode: in.PostalCode,
	}
	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	branch := &model.Branch{
		Name:        in.Name,
		AddressID:   address.ID,
		Capacity:    in.Capacity,
		OpeningHour: in.OpeningHour,
		ClosingHour: in.ClosingHour,
		Status:      model.BranchStatusActive,
		Amenities:   in.Amenities,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}
	return branch, nil
}

func (s *branchService) GetBranch(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBranchNotFound
	}
	return branch, err
}

func (s *branchService) UpdateBranchStatus(ctx context.Context, id uuid.UUID, status model.BranchStatus) (*model.Branch, error) {
	branch, err := s.GetBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	branch.Status = status
	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, fmt.Errorf("update branch: %w", err)
	}
	return branch, nil
}

// DeleteBranch soft-deletes a branch, refusing while staff or clients are
// still attached.
func (s *branchService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetBranch(ctx, id); err != nil {
		return err
	}
	n, err := s.branchRepo.CountActiveDependents(ctx, id)
	if err != nil {
		return fmt.Errorf("count dependents: %w", err)
	}
	if n > 0 {
		return ErrBranchHasDependents
	}
	return s.branchRepo.Delete(ctx, id)
}

func (s *branchService) ListBranches(
	ctx context.Context, limit int, cursor *pagination.Cursor,
) (*pagination.Page[model.Branch], error) {
	limit = pagination.ClampLimit(limit)
	branches, err := s.branchRepo.List(ctx, limit+1, cursor)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	return pagination.BuildPage(branches, limit, func(b model.Branch) (time.Time, uuid.UUID) {
		return b.CreatedAt, b.ID
	}), nil
}

var _ BranchService = (*branchService)(nil)
