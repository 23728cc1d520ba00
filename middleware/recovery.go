package middleware

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

// Recovery turns a panic into a logged 500 with the usual error body. The
// stack never reaches the client.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		utils.LogErrorWithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}, fmt.Errorf("panic: %v", recovered), "Recovered from panic")

		c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "Internal server error"})
	})
}
