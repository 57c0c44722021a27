package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/observability/metrics"
	"fitchain/gymhub/internal/repository"
	"fitchain/gymhub/pkg/pagination"
)

// PostView is a post with its stored image key resolved to a public URL.
type PostView struct {
	model.Post
	ImageURL string `json:"image_url,omitempty"`
}

type PostService interface {
	CreatePost(ctx context.Context, trainerUserID uuid.UUID, body, imageKey string) (*PostView, error)
	DeletePost(ctx context.Context, postID, trainerUserID uuid.UUID) error
	// ToggleLike flips the (post, user) like row and the denormalized counter
	// inside one transaction. Returns whether the post ends up liked and the
	// resulting count.
	ToggleLike(ctx context.Context, postID, userID uuid.UUID) (liked bool, likesCount int, err error)
	Feed(ctx context.Context, limit int, cursor *pagination.Cursor) (*pagination.Page[PostView], error)
	FeedByTrainer(ctx context.Context, trainerID uuid.UUID, limit int, cursor *pagination.Cursor) (*pagination.Page[PostView], error)
}

type postService struct {
	postRepo     repository.PostRepository
	trainerRepo  repository.TrainerRepository
	mediaBaseURL string
}

func NewPostService(
	postRepo repository.PostRepository,
	trainerRepo repository.TrainerRepository,
	mediaBaseURL string,
) PostService {
	return &postService{
		postRepo:     postRepo,
		trainerRepo:  trainerRepo,
		mediaBaseURL: strings.TrimSuffix(mediaBaseURL, "/"),
	}
}

func (s *postService) CreatePost(ctx context.Context, trainerUserID uuid.UUID, body, imageKey string) (*PostView, error) {
	trainer, err := s.trainerRepo.GetByUserID(ctx, trainerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, fmt.Errorf("find trainer: %w", err)
	}

	post := &model.Post{
		TrainerID: trainer.ID,
		Body:      body,
		ImageKey:  imageKey,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.view(*post), nil
}

func (s *postService) DeletePost(ctx context.Context, postID, trainerUserID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("find post: %w", err)
	}
	trainer, err := s.trainerRepo.GetByUserID(ctx, trainerUserID)
	if err != nil || trainer.ID != post.TrainerID {
		return ErrPostNotOwned
	}
	return s.postRepo.Delete(ctx, postID)
}

func (s *postService) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, int, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrPostNotFound
		}
		return false, 0, fmt.Errorf("find post: %w", err)
	}

	var liked bool
	err := s.postRepo.WithTx(ctx, func(tx repository.PostRepository) error {
		existing, err := tx.GetLike(ctx, postID, userID)
		switch {
		case err == nil:
			if err := tx.DeleteLike(ctx, existing.ID); err != nil {
				return fmt.Errorf("delete like: %w", err)
			}
			return tx.AddToLikesCount(ctx, postID, -1)
		case errors.Is(err, gorm.ErrRecordNotFound):
			liked = true
			like := &model.PostLike{PostID: postID, UserID: userID}
			if err := tx.CreateLike(ctx, like); err != nil {
				return fmt.Errorf("create like: %w", err)
			}
			return tx.AddToLikesCount(ctx, postID, 1)
		default:
			return fmt.Errorf("check like: %w", err)
		}
	})
	if err != nil {
		return false, 0, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, 0, fmt.Errorf("reload post: %w", err)
	}
	if liked {
		metrics.PostLikeTogglesTotal.WithLabelValues("like").Inc()
	} else {
		metrics.PostLikeTogglesTotal.WithLabelValues("unlike").Inc()
	}
	return liked, post.LikesCount, nil
}

func (s *postService) Feed(
	ctx context.Context, limit int, cursor *pagination.Cursor,
) (*pagination.Page[PostView], error) {
	limit = pagination.ClampLimit(limit)
	posts, err := s.postRepo.List(ctx, limit+1, cursor)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return s.page(posts, limit), nil
}

func (s *postService) FeedByTrainer(
	ctx context.Context, trainerID uuid.UUID, limit int, cursor *pagination.Cursor,
) (*pagination.Page[PostView], error) {
	limit = pagination.ClampLimit(limit)
	posts, err := s.postRepo.ListByTrainer(ctx, trainerID, limit+1, cursor)
	if err != nil {
		return nil, fmt.Errorf("list trainer posts: %w", err)
	}
	return s.page(posts, limit), nil
}

func (s *postService) page(posts []model.Post, limit int) *pagination.Page[PostView] {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, *s.view(p))
	}
	return pagination.BuildPage(views, limit, func(v PostView) (time.Time, uuid.UUID) {
		return v.CreatedAt, v.ID
	})
}

func (s *postService) view(post model.Post) *PostView {
	view := &PostView{Post: post}
	if post.ImageKey != "" && s.mediaBaseURL != "" {
		view.ImageURL = s.mediaBaseURL + "/" + post.ImageKey
	}
	return view
}

var _ PostService = (*postService)(nil)
