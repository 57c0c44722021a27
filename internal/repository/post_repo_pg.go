package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/pkg/pagination"
)

type pgPostRepository struct {
	db *gorm.DB
}

func NewPGPostRepository(db *gorm.DB) PostRepository {
	return &pgPostRepository{db: db}
}

func (r *pgPostRepository) WithTx(ctx context.Context, fn func(tx PostRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgPostRepository{db: tx})
	})
}

func (r *pgPostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *pgPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *pgPostRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *pgPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, "id = ?", id).Error
}

func (r *pgPostRepository) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Scopes(keyset(cursor)).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *pgPostRepository) ListByTrainer(
	ctx context.Context, trainerID uuid.UUID, limit int, cursor *pagination.Cursor,
) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Scopes(keyset(cursor)).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *pgPostRepository) GetLike(ctx context.Context, postID, userID uuid.UUID) (*model.PostLike, error) {
	var like model.PostLike
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *pgPostRepository) CreateLike(ctx context.Context, like *model.PostLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *pgPostRepository) DeleteLike(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PostLike{}, "id = ?", id).Error
}

func (r *pgPostRepository) AddToLikesCount(ctx context.Context, postID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", postID).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).
		Error
}

func (r *pgPostRepository) CountLikes(ctx context.Context, postID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Count(&n).Error
	return n, err
}
