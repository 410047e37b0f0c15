package stats

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mnch-training-tracker/certificates-backend/internal/certificates"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats/dashboard", h.Dashboard)
}

func (h *Handler) Dashboard(c *gin.Context) {
	window := Window(c.DefaultQuery("window", string(WindowMonth)))

	dashboard, err := h.service.Dashboard(c.Request.Context(), window)
	if err != nil {
		if errors.Is(err, certificates.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
