package repository

import (
	"context"

	"github.com/google/uuid"

	"fitchain/gymhub/internal/model"
)

type PersonRepository interface {
	Create(ctx context.Context, person *model.Person) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Person, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Person, error)
	GetByDocument(ctx context.Context, docType model.DocumentType, docNumber string) (*model.Person, error)
	Update(ctx context.Context, person *model.Person) error
	Delete(ctx context.Context, id uuid.UUID) error
}
