package handler

import (
	"net/http"

	"github.com/gdugdh24/devconnector-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
	log            *zap.Logger
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		log:            log,
	}
}

// GetMyProfile handles GET /profile
// @Summary Get my profile
// @Description Get current user's profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.ProfileView
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /profile [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	view, err := h.profileUseCase.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, errNoProfile)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetAll handles GET /profile/all
// @Summary List profiles
// @Tags profile
// @Produce json
// @Success 200 {array} domain.ProfileView
// @Failure 404 {object} map[string]string
// @Router /profile/all [get]
func (h *ProfileHandler) GetAll(c *gin.Context) {
	views, err := h.profileUseCase.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, errNoProfiles)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GetByHandle handles GET /profile/handle/:handle
// @Summary Get profile by handle
// @Tags profile
// @Produce json
// @Param handle path string true "Profile handle"
// @Success 200 {object} domain.ProfileView
// @Failure 404 {object} map[string]string
// @Router /profile/handle/{handle} [get]
func (h *ProfileHandler) GetByHandle(c *gin.Context) {
	view, err := h.profileUseCase.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondError(c, h.log, err, errNoProfile)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetByUserID handles GET /profile/user/:user_id
// @Summary Get profile by user ID
// @Tags profile
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} domain.ProfileView
// @Failure 404 {object} map[string]string
// @Router /profile/user/{user_id} [get]
func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	view, err := h.profileUseCase.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.log, err, errNoProfile)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Upsert handles POST /profile
// @Summary Create or update my profile
// @Description Creates the profile on first call, merges sent fields afterwards
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.ProfileInput true "Profile fields"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /profile [post]
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var in profile.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondValidation(c, err)
		return
	}

	result, err := h.profileUseCase.Upsert(c.Request.Context(), userID, &in)
	if err != nil {
		respondError(c, h.log, err, errNoProfile)
		return
	}
	if result.HandleTaken {
		errHandleTaken.write(c)
		return
	}

	c.JSON(http.StatusOK, result.Profile)
}

// DeleteAccount handles DELETE /profile
// @Summary Delete my account
// @Description Deletes the profile and then the user
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string
// @Router /profile [delete]
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.profileUseCase.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondError(c, h.log, err, errNoProfile)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddExperience handles POST /profile/experience
// @Summary Add experience
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.ExperienceRequest true "Experience entry"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /profile/experience [post]
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req profile.ExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	updated, err := h.profileUseCase.AddExperience(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.log, err, errNoProfile)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// RemoveExperience handles DELETE /profile/experience/:exp_id
// @Summary Remove experience
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param exp_id path string true "Experience ID"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /profile/experience/{exp_id} [delete]
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	updated, err := h.profileUseCase.RemoveExperience(c.Request.Context(), userID, c.Param("exp_id"))
	if err != nil {
		respondError(c, h.log, err, errNoProfile)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// AddEducation handles POST /profile/education
// @Summary Add education
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.EducationRequest true "Education entry"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /profile/education [post]
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req profile.EducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	updated, err := h.profileUseCase.AddEducation(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.log, err, errNoProfile)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// RemoveEducation handles DELETE /profile/education/:edu_id
// @Summary Remove education
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param edu_id path string true "Education ID"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /profile/education/{edu_id} [delete]
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	updated, err := h.profileUseCase.RemoveEducation(c.Request.Context(), userID, c.Param("edu_id"))
	if err != nil {
		respondError(c, h.log, err, errNoProfile)
		return
	}

	c.JSON(http.StatusOK, updated)
}
