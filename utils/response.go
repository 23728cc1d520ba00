package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the only error body the API ever sends.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendError writes {"error": message} with the given status.
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// SendAppError maps err through its kind. Internal failures are logged with
// the request context and answered with fallback only.
func SendAppError(c *gin.Context, err error, fallback string) {
	kind := KindOf(err)
	status := StatusFor(kind)

	if status >= 500 {
		LogErrorWithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"kind":   string(kind),
		}, err, fallback)
	}

	SendError(c, status, PublicMessage(err, fallback))
}
