package handler

import (
	"net/http"

	"github.com/gdugdh24/devconnector-backend/internal/usecase/post"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostHandler struct {
	postUseCase *post.PostUseCase
	log         *zap.Logger
}

func NewPostHandler(postUseCase *post.PostUseCase, log *zap.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		log:         log,
	}
}

// GetPosts handles GET /posts
// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {array} domain.Post
// @Failure 404 {object} map[string]string
// @Router /posts [get]
func (h *PostHandler) GetPosts(c *gin.Context) {
	posts, err := h.postUseCase.GetPosts(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, errNoPostsFound)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost handles GET /posts/:id
// @Summary Get post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} domain.Post
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	p, err := h.postUseCase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, errNoPostFound)
		return
	}

	c.JSON(http.StatusOK, p)
}

// CreatePost handles POST /posts
// @Summary Create post
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body post.PostRequest true "Post"
// @Success 200 {object} domain.Post
// @Failure 400 {object} map[string]string
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req post.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	p, err := h.postUseCase.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.log, err, errPostNotFound)
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeletePost handles DELETE /posts/:id
// @Summary Delete post
// @Description Only the author may delete a post
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.postUseCase.DeletePost(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.log, err, errPostNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Like handles POST /posts/like/:id
// @Summary Like post
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} domain.Post
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/like/{id} [post]
func (h *PostHandler) Like(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	p, err := h.postUseCase.Like(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, errPostNotFound)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Unlike handles POST /posts/unlike/:id
// @Summary Unlike post
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} domain.Post
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/unlike/{id} [post]
func (h *PostHandler) Unlike(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	p, err := h.postUseCase.Unlike(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, errPostNotFound)
		return
	}

	c.JSON(http.StatusOK, p)
}

// AddComment handles POST /posts/comment/:id
// @Summary Comment on post
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body post.PostRequest true "Comment"
// @Success 200 {object} domain.Post
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/comment/{id} [post]
func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req post.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	p, err := h.postUseCase.AddComment(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		respondError(c, h.log, err, errPostNotFound)
		return
	}

	c.JSON(http.StatusOK, p)
}

// RemoveComment handles DELETE /posts/comment/:id/:comment_id
// @Summary Remove comment
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Post ID"
// @Param comment_id path string true "Comment ID"
// @Success 200 {object} domain.Post
// @Failure 404 {object} map[string]string
// @Router /posts/comment/{id}/{comment_id} [delete]
func (h *PostHandler) RemoveComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	p, err := h.postUseCase.RemoveComment(c.Request.Context(), userID, c.Param("id"), c.Param("comment_id"))
	if err != nil {
		respondError(c, h.log, err, errPostNotFound)
		return
	}

	c.JSON(http.StatusOK, p)
}
