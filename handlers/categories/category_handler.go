package categories

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subratpandeyy/The-Wedding-Shades/models"
)

// @Summary Get all categories
// @Description List the post categories in display order. The set is fixed at build time.
// @Tags categories
// @Produce json
// @Success 200 {array} string
// @Router /categories [get]
func GetAllCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.CategoryNames())
}
