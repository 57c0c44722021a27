package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/pkg/pagination"
)

type pgCityRepository struct {
	db *gorm.DB
}

func NewPGCityRepository(db *gorm.DB) CityRepository {
	return &pgCityRepository{db: db}
}

func (r *pgCityRepository) Create(ctx context.Context, city *model.City) error {
	return r.db.WithContext(ctx).Create(city).Error
}

func (r *pgCityRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.City, error) {
	var city model.City
	if err := r.db.WithContext(ctx).First(&city, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *pgCityRepository) GetByNameAndState(ctx context.Context, name, state string) (*model.City, error) {
	var city model.City
	err := r.db.WithContext(ctx).
		Where("lower(name) = lower(?) AND lower(state) = lower(?)", name, state).
		First(&city).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *pgCityRepository) List(ctx context.Context) ([]model.City, error) {
	var cities []model.City
	err := r.db.WithContext(ctx).Order("name ASC").Find(&cities).Error
	return cities, err
}

func (r *pgCityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.City{}, "id = ?", id).Error
}

type pgAddressRepository struct {
	db *gorm.DB
}

func NewPGAddressRepository(db *gorm.DB) AddressRepository {
	return &pgAddressRepository{db: db}
}

func (r *pgAddressRepository) Create(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *pgAddressRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	var address model.Address
	if err := r.db.WithContext(ctx).Preload("City").First(&address, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *pgAddressRepository) Update(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

func (r *pgAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Address{}, "id = ?", id).Error
}

type pgBranchRepository struct {
	db *gorm.DB
}

func NewPGBranchRepository(db *gorm.DB) BranchRepository {
	return &pgBranchRepository{db: db}
}

func (r *pgBranchRepository) Create(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *pgBranchRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	var branch model.Branch
	err := r.db.WithContext(ctx).
		Preload("Address").Preload("Address.City").
		First(&branch, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *pgBranchRepository) Update(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

func (r *pgBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Branch{}, "id = ?", id).Error
}

func (r *pgBranchRepository) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]model.Branch, error) {
	var branches []model.Branch
	err := r.db.WithContext(ctx).
		Scopes(keyset(cursor)).
		Limit(limit).
		Find(&branches).Error
	return branches, err
}

// CountActiveDependents counts active admins, trainers and client links still
// attached to a branch. Branch soft-deletion is refused while this is non-zero.
func (r *pgBranchRepository) CountActiveDependents(ctx context.Context, branchID uuid.UUID) (int64, error) {
	var total, n int64

	if err := r.db.WithContext(ctx).Model(&model.Admin{}).
		Where("branch_id = ? AND status = ?", branchID, model.StaffStatusActive).
		Count(&n).Error; err != nil {
		return 0, err
	}
	total += n

	if err := r.db.WithContext(ctx).Model(&model.Trainer{}).
		Where("branch_id = ? AND status = ?", branchID, model.StaffStatusActive).
		Count(&n).Error; err != nil {
		return 0, err
	}
	total += n

	if err := r.db.WithContext(ctx).Model(&model.ClientBranch{}).
		Where("branch_id = ? AND active", branchID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return total + n, nil
}
