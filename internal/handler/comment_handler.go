package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maksido/blog-api/internal/middleware"
	"github.com/maksido/blog-api/internal/service"
	appErrors "github.com/maksido/blog-api/pkg/errors"
	"github.com/maksido/blog-api/pkg/response"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	service *service.CommentService
}

// NewCommentHandler constructs a comment handler.
func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{service: svc}
}

// Write godoc
// @Summary Comment on a post
// @Tags Comments
// @Accept json
// @Produce json
// @Param payload body service.WriteCommentRequest true "Comment payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /comments [post]
func (h *CommentHandler) Write(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.WriteCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	comment, err := h.service.Write(c.Request.Context(), user, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

// ListByPost godoc
// @Summary List comments for a post
// @Tags Comments
// @Produce json
// @Param postId path string true "Post ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /comments/{postId} [get]
func (h *CommentHandler) ListByPost(c *gin.Context) {
	comments, err := h.service.ListByPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comments, nil)
}

// Delete godoc
// @Summary Delete own comment
// @Tags Comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	comment, err := h.service.Delete(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comment, nil)
}
