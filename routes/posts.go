package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/subratpandeyy/The-Wedding-Shades/handlers/posts"
	"github.com/subratpandeyy/The-Wedding-Shades/middleware"
)

func PostsRoutes(r *gin.Engine, deps Dependencies) {
	h := posts.New(deps.Store, deps.Images)

	// Public routes
	r.GET("/posts", h.GetAllPosts)
	r.GET("/posts/:id", h.GetPostByID)

	// Admin routes, open when no secret is configured
	postsRoutes := r.Group("/posts")
	postsRoutes.Use(middleware.AdminAuth(deps.Config.AdminJWTSecret))
	{
		postsRoutes.POST("", middleware.BodyLimit(uploadBodyLimit(deps.Config)), h.CreatePost)
		postsRoutes.PUT("/:id", h.UpdatePost)
		postsRoutes.DELETE("/:id", h.DeletePost)
	}
}
