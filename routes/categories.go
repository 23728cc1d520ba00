package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/subratpandeyy/The-Wedding-Shades/handlers/categories"
)

func CategoriesRoutes(r *gin.Engine) {
	r.GET("/categories", categories.GetAllCategories)
}
