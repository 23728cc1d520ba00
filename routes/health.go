package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/subratpandeyy/The-Wedding-Shades/handlers/health"
)

func HealthRoutes(r *gin.Engine) {
	r.GET("/", health.New().HandleHealth)
}
