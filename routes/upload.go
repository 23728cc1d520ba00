package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/subratpandeyy/The-Wedding-Shades/handlers/upload"
	"github.com/subratpandeyy/The-Wedding-Shades/middleware"
)

func UploadRoutes(r *gin.Engine, deps Dependencies) {
	h := upload.New(deps.Images)

	r.POST("/upload",
		middleware.AdminAuth(deps.Config.AdminJWTSecret),
		middleware.BodyLimit(uploadBodyLimit(deps.Config)),
		h.UploadImage,
	)
}
