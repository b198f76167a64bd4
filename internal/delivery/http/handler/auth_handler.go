package handler

import (
	"net/http"

	"github.com/gdugdh24/devconnector-backend/internal/usecase/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
	log         *zap.Logger
}

func NewAuthHandler(authUseCase *auth.AuthUseCase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		log:         log,
	}
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Register handles POST /users/register
// @Summary Register
// @Description Create a new user account
// @Tags users
// @Accept json
// @Produce json
// @Param request body auth.RegisterRequest true "Account data"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := h.authUseCase.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, errInvalidRequest)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login handles POST /users/login
// @Summary Login
// @Description Exchange credentials for a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param request body auth.LoginRequest true "Credentials"
// @Success 200 {object} auth.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	resp, err := h.authUseCase.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, errNoUser)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Current handles GET /users/current
// @Summary Current user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} map[string]string
// @Router /users/current [get]
func (h *AuthHandler) Current(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.authUseCase.GetCurrent(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, errUnauthorized)
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
	})
}

// currentUser reads the id set by the auth middleware. It writes a 401 when
// the id is missing.
func currentUser(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		errUnauthorized.write(c)
		return "", false
	}
	return userID, true
}
