package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/meridian-ins/claims-api/internal/models"
	appErrors "github.com/meridian-ins/claims-api/pkg/errors"
	"github.com/meridian-ins/claims-api/pkg/export"
)

// Export formats supported by the claims report.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type exportClaimLister interface {
	List(ctx context.Context, filter models.ClaimFilter) ([]models.Claim, error)
}

// ExportDocument is a rendered claims report.
type ExportDocument struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the claim table into downloadable reports.
type ExportService struct {
	claims exportClaimLister
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
}

// NewExportService constructs an ExportService.
func NewExportService(claims exportClaimLister) *ExportService {
	return &ExportService{
		claims: claims,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
	}
}

var exportHeaders = []string{"ID", "Claim Number", "Claimant", "Amount", "Status", "Date Filed", "Approved"}

// Render produces the report in the requested format, optionally filtered by
// status.
func (s *ExportService) Render(ctx context.Context, format string, filter models.ClaimFilter) (*ExportDocument, error) {
	claims, err := s.claims.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list claims for export")
	}

	dataset := export.Dataset{Headers: exportHeaders, Rows: make([]map[string]string, 0, len(claims))}
	for _, claim := range claims {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":           strconv.FormatInt(claim.ID, 10),
			"Claim Number": claim.ClaimNumber,
			"Claimant":     claim.ClaimantName,
			"Amount":       strconv.FormatFloat(claim.Amount, 'f', 2, 64),
			"Status":       claim.Status,
			"Date Filed":   claim.DateFiled.String(),
			"Approved":     strconv.FormatBool(claim.IsApproved),
		})
	}

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ExportDocument{Content: content, ContentType: "text/csv", Filename: "claims.csv"}, nil
	case FormatPDF:
		content, err := s.pdf.Render(dataset, "Insurance Claims")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &ExportDocument{Content: content, ContentType: "application/pdf", Filename: "claims.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format: %s", format))
	}
}
