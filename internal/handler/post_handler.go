package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fitchain/gymhub/internal/service"
	"fitchain/gymhub/pkg/response"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type CreatePostRequest struct {
	Body     string `json:"body" binding:"required,max=4000"`
	ImageKey string `json:"image_key"`
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), userID, req.Body, req.ImageKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound):
			response.Forbidden(c, "only trainers can publish posts")
		default:
			response.InternalError(c, "failed to create post")
		}
		return
	}

	response.Success(c, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	postID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), postID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			response.NotFound(c, "post not found")
		case errors.Is(err, service.ErrTrainerNotFound):
			response.Forbidden(c, "only trainers can delete posts")
		case errors.Is(err, service.ErrPostNotOwned):
			response.Forbidden(c, err.Error())
		default:
			response.InternalError(c, "failed to delete post")
		}
		return
	}

	response.Success(c, nil)
}

func (h *PostHandler) ToggleLike(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	postID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	liked, likesCount, err := h.postService.ToggleLike(c.Request.Context(), postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			response.NotFound(c, "post not found")
		default:
			response.InternalError(c, "failed to toggle like")
		}
		return
	}

	response.Success(c, gin.H{"liked": liked, "likes_count": likesCount})
}

func (h *PostHandler) Feed(c *gin.Context) {
	limit, cursor, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.postService.Feed(c.Request.Context(), limit, cursor)
	if err != nil {
		response.InternalError(c, "failed to load feed")
		return
	}

	response.Success(c, page)
}

func (h *PostHandler) FeedByTrainer(c *gin.Context) {
	trainerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	limit, cursor, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.postService.FeedByTrainer(c.Request.Context(), trainerID, limit, cursor)
	if err != nil {
		response.InternalError(c, "failed to load feed")
		return
	}

	response.Success(c, page)
}
