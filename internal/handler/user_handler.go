package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maksido/blog-api/internal/middleware"
	"github.com/maksido/blog-api/internal/models"
	"github.com/maksido/blog-api/internal/service"
	appErrors "github.com/maksido/blog-api/pkg/errors"
	"github.com/maksido/blog-api/pkg/response"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler constructs a user handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// UpdateInfo godoc
// @Summary Update profile
// @Description Change the current user's userName and email
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body models.UpdateInfoRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users/update-info [patch]
func (h *UserHandler) UpdateInfo(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.UpdateInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	updated, err := h.service.UpdateInfo(c.Request.Context(), user, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, updated, nil)
}

// UpdatePassword godoc
// @Summary Update password
// @Description Verify the old password and store a new one
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body models.UpdatePasswordRequest true "Password payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /users/update-password [patch]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	updated, err := h.service.UpdatePassword(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, updated, nil)
}
