package http

import (
	"github.com/gdugdh24/devconnector-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/devconnector-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	postHandler    *handler.PostHandler
	authMiddleware *middleware.AuthMiddleware
	log            *zap.Logger
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	postHandler *handler.PostHandler,
	authMiddleware *middleware.AuthMiddleware,
	log *zap.Logger,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		postHandler:    postHandler,
		authMiddleware: authMiddleware,
		log:            log,
	}
}

// Setup builds the engine. RegisterValidators must have been called first.
func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(r.log))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	requireAuth := r.authMiddleware.RequireAuth()

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", r.authHandler.Register)
			users.POST("/login", r.authHandler.Login)
			users.GET("/current", requireAuth, r.authHandler.Current)
		}

		profile := api.Group("/profile")
		{
			// Public reads
			profile.GET("/all", r.profileHandler.GetAll)
			profile.GET("/handle/:handle", r.profileHandler.GetByHandle)
			profile.GET("/user/:user_id", r.profileHandler.GetByUserID)

			profile.GET("", requireAuth, r.profileHandler.GetMyProfile)
			profile.POST("", requireAuth, r.profileHandler.Upsert)
			profile.DELETE("", requireAuth, r.profileHandler.DeleteAccount)
			profile.POST("/experience", requireAuth, r.profileHandler.AddExperience)
			profile.DELETE("/experience/:exp_id", requireAuth, r.profileHandler.RemoveExperience)
			profile.POST("/education", requireAuth, r.profileHandler.AddEducation)
			profile.DELETE("/education/:edu_id", requireAuth, r.profileHandler.RemoveEducation)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", r.postHandler.GetPosts)
			posts.GET("/:id", r.postHandler.GetPost)

			posts.POST("", requireAuth, r.postHandler.CreatePost)
			posts.DELETE("/:id", requireAuth, r.postHandler.DeletePost)
			posts.POST("/like/:id", requireAuth, r.postHandler.Like)
			posts.POST("/unlike/:id", requireAuth, r.postHandler.Unlike)
			posts.POST("/comment/:id", requireAuth, r.postHandler.AddComment)
			posts.DELETE("/comment/:id/:comment_id", requireAuth, r.postHandler.RemoveComment)
		}
	}

	return router
}
