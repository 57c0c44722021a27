package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/pkg/pagination"
)

type pgTrainerRepository struct {
	db *gorm.DB
}

func NewPGTrainerRepository(db *gorm.DB) TrainerRepository {
	return &pgTrainerRepository{db: db}
}

func (r *pgTrainerRepository) Create(ctx context.Context, trainer *model.Trainer) error {
	return r.db.WithContext(ctx).Create(trainer).Error
}

func (r *pgTrainerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Trainer, error) {
	var trainer model.Trainer
	if err := r.db.WithContext(ctx).Preload("Person").First(&trainer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &trainer, nil
}

func (r *pgTrainerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Trainer, error) {
	var trainer model.Trainer
	if err := r.db.WithContext(ctx).First(&trainer, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &trainer, nil
}

func (r *pgTrainerRepository) GetByEmployeeCode(ctx context.Context, code string) (*model.Trainer, error) {
	var trainer model.Trainer
	if err := r.db.WithContext(ctx).First(&trainer, "employee_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &trainer, nil
}

func (r *pgTrainerRepository) Update(ctx context.Context, trainer *model.Trainer) error {
	return r.db.WithContext(ctx).Save(trainer).Error
}

func (r *pgTrainerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Trainer{}, "id = ?", id).Error
}

func (r *pgTrainerRepository) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]model.Trainer, error) {
	var trainers []model.Trainer
	err := r.db.WithContext(ctx).
		Preload("Person").
		Scopes(keyset(cursor)).
		Limit(limit).
		Find(&trainers).Error
	return trainers, err
}

func (r *pgTrainerRepository) ListByBranch(
	ctx context.Context, branchID uuid.UUID, limit int, cursor *pagination.Cursor,
) ([]model.Trainer, error) {
	var trainers []model.Trainer
	err := r.db.WithContext(ctx).
		Preload("Person").
		Where("branch_id = ?", branchID).
		Scopes(keyset(cursor)).
		Limit(limit).
		Find(&trainers).Error
	return trainers, err
}

// ListActive is the trainer catalog shown to clients.
func (r *pgTrainerRepository) ListActive(ctx context.Context, limit int, cursor *pagination.Cursor) ([]model.Trainer, error) {
	var trainers []model.Trainer
	err := r.db.WithContext(ctx).
		Preload("Person").
		Where("status = ?", model.StaffStatusActive).
		Scopes(keyset(cursor)).
		Limit(limit).
		Find(&trainers).Error
	return trainers, err
}
