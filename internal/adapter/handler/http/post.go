package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"blogsvc/internal/core/domain"
	"blogsvc/internal/core/ports"
	"blogsvc/internal/core/scope"
)

type PostHandler struct {
	postService ports.PostService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

func NewPostHandler(
	postService ports.PostService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
		metrics:     metrics,
	}
}

type PostRequest struct {
	Title     string `json:"title" example:"Hello"`
	Content   string `json:"content" example:"Long enough content"`
	Published bool   `json:"published" example:"false"`
	UserID    int64  `json:"user_id" example:"1"`
}

type PostDTO struct {
	ID        int64  `json:"id" example:"1"`
	Title     string `json:"title" example:"Hello"`
	Content   string `json:"content" example:"Long enough content"`
	Summary   string `json:"summary" example:"Long enough content"`
	Published bool   `json:"published" example:"false"`
	UserID    int64  `json:"user_id" example:"1"`
	CreatedAt string `json:"created_at" example:"2024-01-31T10:00:00Z"`
}

func toPostDTO(post *domain.Post) PostDTO {
	return PostDTO{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Summary:   post.Summary(),
		Published: post.Published,
		UserID:    post.UserID,
		CreatedAt: post.CreatedAt.Format(time.RFC3339),
	}
}

// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body PostRequest true "Post data"
// @Success 201 {object} successResponse{data=PostDTO} "Post created"
// @Failure 422 {object} validationErrorResponse "Validation failed"
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create post", map[string]interface{}{
			"error":      err.Error(),
			"request_id": requestID(c),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	post := &domain.Post{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		UserID:    req.UserID,
	}

	createdPost, err := h.postService.CreatePost(c.Request.Context(), post)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			newValidationErrorResponse(c, verr)
			return
		}
		h.logger.Error("Failed to create post", map[string]interface{}{
			"error":      err.Error(),
			"request_id": requestID(c),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Create failed")
		return
	}

	newSuccessResponse(c, http.StatusCreated, "Post created successfully", toPostDTO(createdPost))
}

// @Summary List posts
// @Description Most recent first; ?published=true applies the published scope
// @Tags posts
// @Produce json
// @Param published query bool false "Only published posts"
// @Success 200 {object} successResponse "posts"
// @Router /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	q := scope.Recent()
	if c.Query("published") == "true" {
		q = scope.Published().And(q)
	}

	posts, err := h.postService.ListPosts(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("Failed to list posts", map[string]interface{}{
			"error":      err.Error(),
			"request_id": requestID(c),
		})
		newErrorResponse(c, http.StatusInternalServerError, "List failed")
		return
	}

	dtos := make([]PostDTO, 0, len(posts))
	for i := range posts {
		dtos = append(dtos, toPostDTO(&posts[i]))
	}

	newSuccessResponse(c, http.StatusOK, "posts", gin.H{"posts": dtos})
}

// @Summary Get post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} successResponse{data=PostDTO} "Post found"
// @Failure 404 {object} errorResponse "Post not found"
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("Failed to get post", map[string]interface{}{
			"error":      err.Error(),
			"post_id":    id,
			"request_id": requestID(c),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Get failed")
		return
	}

	newSuccessResponse(c, http.StatusOK, "Post found", toPostDTO(post))
}

// @Summary Delete post
// @Description Removes a single post; no other entity is affected
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} successResponse "Post deleted"
// @Failure 404 {object} errorResponse "Post not found"
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid post ID")
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("Failed to delete post", map[string]interface{}{
			"error":      err.Error(),
			"post_id":    id,
			"request_id": requestID(c),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Delete failed")
		return
	}

	newSuccessResponse(c, http.StatusOK, "Post deleted successfully", nil)
}
