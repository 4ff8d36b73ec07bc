package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/meridian-ins/claims-api/internal/models"
	"github.com/meridian-ins/claims-api/internal/service"
	appErrors "github.com/meridian-ins/claims-api/pkg/errors"
)

type stubExportService struct {
	doc        *service.ExportDocument
	err        error
	lastFormat string
	lastFilter models.ClaimFilter
}

func (s *stubExportService) Render(_ context.Context, format string, filter models.ClaimFilter) (*service.ExportDocument, error) {
	s.lastFormat = format
	s.lastFilter = filter
	return s.doc, s.err
}

func newExportRouter(svc ExportService) *gin.Engine {
	r := gin.New()
	r.GET("/claims/export", NewExportHandler(svc).Export)
	return r
}

func TestExportHandlerDefaultsToCSV(t *testing.T) {
	svc := &stubExportService{doc: &service.ExportDocument{
		Content:     []byte("ID,Claim Number\n"),
		ContentType: "text/csv",
		Filename:    "claims.csv",
	}}
	r := newExportRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/claims/export?status=approved", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.FormatCSV, svc.lastFormat)
	assert.Equal(t, "approved", svc.lastFilter.Status)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="claims.csv"`, w.Header().Get("Content-Disposition"))
}

func TestExportHandlerPDF(t *testing.T) {
	svc := &stubExportService{doc: &service.ExportDocument{
		Content:     []byte("%PDF-1.3"),
		ContentType: "application/pdf",
		Filename:    "claims.pdf",
	}}
	r := newExportRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/claims/export?format=pdf", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.FormatPDF, svc.lastFormat)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
}

func TestExportHandlerUnsupportedFormat(t *testing.T) {
	svc := &stubExportService{err: appErrors.Clone(appErrors.ErrValidation, "unsupported export format: xlsx")}
	r := newExportRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/claims/export?format=xlsx", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail": "unsupported export format: xlsx"}`, w.Body.String())
}
