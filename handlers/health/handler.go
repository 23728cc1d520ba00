package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	now func() time.Time
}

func New() *Handler {
	return &Handler{now: time.Now}
}

type Status struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HandleHealth reports that the server is up
// @Summary Health check
// @Description Reports that the server is running with the current server time
// @Tags health
// @Produce json
// @Success 200 {object} health.Status
// @Router / [get]
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, Status{
		Status:    "Server is running",
		Timestamp: h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}
