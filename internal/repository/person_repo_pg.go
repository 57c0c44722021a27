package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
)

type pgPersonRepository struct {
	db *gorm.DB
}

func NewPGPersonRepository(db *gorm.DB) PersonRepository {
	return &pgPersonRepository{db: db}
}

func (r *pgPersonRepository) Create(ctx context.Context, person *model.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *pgPersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Person, error) {
	var person model.Person
	if err := r.db.WithContext(ctx).First(&person, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *pgPersonRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Person, error) {
	var person model.Person
	if err := r.db.WithContext(ctx).First(&person, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *pgPersonRepository) GetByDocument(
	ctx context.Context, docType model.DocumentType, docNumber string,
) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).
		Where("document_type = ? AND document_number = ?", docType, docNumber).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *pgPersonRepository) Update(ctx context.Context, person *model.Person) error {
	return r.db.WithContext(ctx).Save(person).Error
}

func (r *pgPersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Person{}, "id = ?", id).Error
}
