package certificates

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	certs := rg.Group("/certificates")
	{
		certs.POST("", h.Issue)
		certs.GET("", h.List)
		certs.GET("/:id", h.Verify)
		certs.GET("/:id/document", h.Document)
	}
}

type issueBody struct {
	TraineeID      string `json:"trainee_id" binding:"required"`
	TrainingID     string `json:"training_id" binding:"required"`
	CompletionDate string `json:"completion_date" binding:"required"`
	Venue          string `json:"venue" binding:"required"`
	DurationLabel  string `json:"duration_label" binding:"required"`
}

func (h *Handler) Issue(c *gin.Context) {
	var body issueBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	completion, err := time.Parse("2006-01-02", body.CompletionDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "completion_date must be YYYY-MM-DD"})
		return
	}

	issued, err := h.service.Issue(c.Request.Context(), IssueRequest{
		TraineeID:      body.TraineeID,
		TrainingID:     body.TrainingID,
		CompletionDate: completion,
		Venue:          body.Venue,
		DurationLabel:  body.DurationLabel,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Header("X-Certificate-Id", issued.Record.CertificateID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=certificate_%s.pdf", issued.Record.CertificateID))
	c.Data(http.StatusCreated, "application/pdf", issued.Document)
}

func (h *Handler) List(c *gin.Context) {
	recs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *Handler) Verify(c *gin.Context) {
	rec, err := h.service.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) Document(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.service.RenderDocument(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=certificate_%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrReferenceNotFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
