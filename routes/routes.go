package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/subratpandeyy/The-Wedding-Shades/config"
	_ "github.com/subratpandeyy/The-Wedding-Shades/docs"
	"github.com/subratpandeyy/The-Wedding-Shades/handlers/posts"
	"github.com/subratpandeyy/The-Wedding-Shades/middleware"
	"github.com/subratpandeyy/The-Wedding-Shades/storage"
	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

// multipartOverhead is the room left above the file limit for form fields
// and part headers.
const multipartOverhead = 1 << 20

// Dependencies are the process-wide collaborators shared by every request.
type Dependencies struct {
	Config *config.Config
	Store  storage.PostStore
	Images posts.ImageHost
}

func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	r := gin.New()
	r.Use(gin.LoggerWithWriter(utils.LogWriter()))
	r.Use(middleware.Recovery())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	HealthRoutes(r)
	PostsRoutes(r, deps)
	UploadRoutes(r, deps)
	CategoriesRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		utils.SendError(c, http.StatusNotFound, "Route not found")
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", posts.OrphanedImageHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			// browsers refuse credentials with a wildcard origin
			conf.AllowAllOrigins = true
			conf.AllowCredentials = false
			return conf
		}
	}
	conf.AllowOrigins = origins
	return conf
}

func uploadBodyLimit(cfg *config.Config) int64 {
	if cfg.MaxUploadBytes <= 0 {
		return 0
	}
	return cfg.MaxUploadBytes + multipartOverhead
}
