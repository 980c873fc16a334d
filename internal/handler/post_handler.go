package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/refine-admin-api/internal/dto"
	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/query"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
	"github.com/noah-isme/refine-admin-api/pkg/response"
)

type postService interface {
	List(ctx context.Context, q models.ListQuery) ([]models.Post, int, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, req dto.CreatePostRequest) (*models.Post, error)
	Update(ctx context.Context, id int64, req dto.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, id int64) (*models.Post, error)
	DeleteMany(ctx context.Context, ids []int64) ([]int64, error)
}

// PostHandler serves the posts resource in the simple-rest shape.
type PostHandler struct {
	service postService
}

// NewPostHandler constructs a PostHandler.
func NewPostHandler(svc postService) *PostHandler {
	return &PostHandler{service: svc}
}

// List godoc
// @Summary List posts
// @Description Window of posts filtered by simple-rest query parameters. The total row count is returned in X-Total-Count.
// @Tags Posts
// @Produce json
// @Param _start query int false "First row (inclusive)"
// @Param _end query int false "Last row (exclusive)"
// @Param _sort query string false "Comma separated sort fields"
// @Param _order query string false "Comma separated asc|desc"
// @Param q query string false "Full text search"
// @Success 200 {array} models.Post
// @Failure 400 {object} response.Envelope
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	q, err := query.Parse(c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}
	items, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items, total)
}

// Get godoc
// @Summary Get post
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} response.Envelope
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	post, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, post)
}

// Create godoc
// @Summary Create post
// @Tags Posts
// @Accept json
// @Produce json
// @Param payload body dto.CreatePostRequest true "Post payload"
// @Success 201 {object} models.Post
// @Failure 400 {object} response.Envelope
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := bindJSON(c, &req, "invalid post payload"); err != nil {
		response.Error(c, err)
		return
	}
	post, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusCreated, post)
}

// Update godoc
// @Summary Update post
// @Description Partial update; omitted fields keep their value.
// @Tags Posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param payload body dto.UpdatePostRequest true "Post payload"
// @Success 200 {object} models.Post
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /posts/{id} [patch]
func (h *PostHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdatePostRequest
	if err := bindJSON(c, &req, "invalid post payload"); err != nil {
		response.Error(c, err)
		return
	}
	post, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, post)
}

// Delete godoc
// @Summary Delete post
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} response.Envelope
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	post, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, post)
}

// DeleteMany godoc
// @Summary Delete several posts
// @Description Deletes every post whose id is repeated in the id query parameter.
// @Tags Posts
// @Produce json
// @Param id query []int true "Post IDs" collectionFormat(multi)
// @Success 200 {array} object
// @Failure 400 {object} response.Envelope
// @Router /posts [delete]
func (h *PostHandler) DeleteMany(c *gin.Context) {
	raw := c.QueryArray("id")
	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id must be a positive integer"))
			return
		}
		ids = append(ids, id)
	}
	deleted, err := h.service.DeleteMany(c.Request.Context(), ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]gin.H, len(deleted))
	for i, id := range deleted {
		out[i] = gin.H{"id": id}
	}
	response.Raw(c, http.StatusOK, out)
}
