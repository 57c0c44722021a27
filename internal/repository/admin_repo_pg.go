package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/pkg/pagination"
)

type pgAdminRepository struct {
	db *gorm.DB
}

func NewPGAdminRepository(db *gorm.DB) AdminRepository {
	return &pgAdminRepository{db: db}
}

func (r *pgAdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *pgAdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Preload("Person").First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *pgAdminRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).First(&admin, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *pgAdminRepository) GetByCode(ctx context.Context, code string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).First(&admin, "admin_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *pgAdminRepository) GetActiveByBranchID(ctx context.Context, branchID uuid.UUID) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND status = ?", branchID, model.StaffStatusActive).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *pgAdminRepository) GetActiveByPersonID(ctx context.Context, personID uuid.UUID) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("person_id = ? AND status = ?", personID, model.StaffStatusActive).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *pgAdminRepository) Update(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

func (r *pgAdminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Admin{}, "id = ?", id).Error
}

func (r *pgAdminRepository) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]model.Admin, error) {
	var admins []model.Admin
	err := r.db.WithContext(ctx).
		Preload("Person").
		Scopes(keyset(cursor)).
		Limit(limit).
		Find(&admins).Error
	return admins, err
}
