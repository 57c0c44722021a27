package repository

import (
	"context"

	"github.com/google/uuid"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/pkg/pagination"
)

type PostRepository interface {
	// WithTx runs fn against a repository bound to a single database
	// transaction; the like-row write and the counter bump of a toggle
	// commit together.
	WithTx(ctx context.Context, fn func(tx PostRepository) error) error

	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]model.Post, error)
	ListByTrainer(ctx context.Context, trainerID uuid.UUID, limit int, cursor *pagination.Cursor) ([]model.Post, error)

	GetLike(ctx context.Context, postID, userID uuid.UUID) (*model.PostLike, error)
	CreateLike(ctx context.Context, like *model.PostLike) error
	DeleteLike(ctx context.Context, id uuid.UUID) error
	AddToLikesCount(ctx context.Context, postID uuid.UUID, delta int) error
	CountLikes(ctx context.Context, postID uuid.UUID) (int64, error)
}
