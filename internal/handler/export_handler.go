package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meridian-ins/claims-api/internal/models"
	"github.com/meridian-ins/claims-api/internal/service"
	"github.com/meridian-ins/claims-api/pkg/response"
)

// ExportService renders downloadable claim reports.
type ExportService interface {
	Render(ctx context.Context, format string, filter models.ClaimFilter) (*service.ExportDocument, error)
}

// ExportHandler serves claim report downloads.
type ExportHandler struct {
	exports ExportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(exports ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export godoc
// @Summary Download the claim table as CSV or PDF
// @Tags Claims
// @Produce octet-stream
// @Param format query string false "csv (default) or pdf"
// @Param status query string false "Filter by exact claim status"
// @Router /claims/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatCSV)
	filter := models.ClaimFilter{Status: c.Query("status")}

	doc, err := h.exports.Render(c.Request.Context(), format, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}
