package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maksido/blog-api/internal/middleware"
	"github.com/maksido/blog-api/internal/models"
	"github.com/maksido/blog-api/internal/service"
	appErrors "github.com/maksido/blog-api/pkg/errors"
	"github.com/maksido/blog-api/pkg/response"
)

// RefreshTokenCookie is the cookie carrying the long-lived refresh token.
const RefreshTokenCookie = "refreshToken"

// CookieConfig controls how the token cookies are written.
type CookieConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Secure     bool
}

// AuthHandler wires the HTTP auth endpoints to the auth service. Tokens are
// delivered to the client as httpOnly cookies with max-age equal to each
// token's lifetime.
type AuthHandler struct {
	service *service.AuthService
	cookies CookieConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{service: svc, cookies: cookies}
}

// Registration godoc
// @Summary Register a new user
// @Description Create an account and issue the first token pair
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RegistrationRequest true "Registration payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /auth/registration [post]
func (h *AuthHandler) Registration(c *gin.Context) {
	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookies(c, res.Tokens)
	response.JSON(c, http.StatusOK, res.User, nil)
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate by userName, email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookies(c, res.Tokens)
	response.JSON(c, http.StatusOK, res.User, nil)
}

// Refresh godoc
// @Summary Refresh the token pair
// @Description Exchange the refresh token cookie for a new pair
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/refresh [get]
func (h *AuthHandler) Refresh(c *gin.Context) {
	oldRefreshToken, _ := c.Cookie(RefreshTokenCookie)

	res, err := h.service.Refresh(c.Request.Context(), oldRefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookies(c, res.Tokens)
	response.JSON(c, http.StatusOK, res.User, nil)
}

// Logout godoc
// @Summary Logout current session
// @Description Delete the session record and clear the token cookies
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(RefreshTokenCookie)

	if err := h.service.Logout(c.Request.Context(), refreshToken); err != nil {
		response.Error(c, err)
		return
	}

	h.clearTokenCookies(c)
	response.JSON(c, http.StatusOK, gin.H{"message": "logout successful"}, nil)
}

// Me godoc
// @Summary Get current user
// @Description Returns the authenticated user
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, tokens models.TokenPair) {
	c.SetCookie(middleware.AccessTokenCookie, tokens.AccessToken, int(h.cookies.AccessTTL.Seconds()), "/", "", h.cookies.Secure, true)
	c.SetCookie(RefreshTokenCookie, tokens.RefreshToken, int(h.cookies.RefreshTTL.Seconds()), "/", "", h.cookies.Secure, true)
}

func (h *AuthHandler) clearTokenCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.cookies.Secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", h.cookies.Secure, true)
}
