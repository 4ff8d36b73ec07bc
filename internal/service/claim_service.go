package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/meridian-ins/claims-api/internal/models"
	"github.com/meridian-ins/claims-api/internal/repository"
	appErrors "github.com/meridian-ins/claims-api/pkg/errors"
)

type claimRepository interface {
	Insert(ctx context.Context, claim *models.Claim) error
	FindByRef(ctx context.Context, ref models.ClaimRef) (*models.Claim, error)
	List(ctx context.Context, filter models.ClaimFilter) ([]models.Claim, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

type claimLogReader interface {
	List(ctx context.Context) ([]models.ClaimLog, error)
}

// auditRecorder receives fire-and-forget notifications about claim mutations.
type auditRecorder interface {
	RecordCreated(claimNumber string)
}

// CreateClaimRequest represents the payload for filing a claim. Amount accepts a
// JSON number or a numeric string.
type CreateClaimRequest struct {
	ClaimNumber  string         `json:"claim_number" validate:"required"`
	ClaimantName string         `json:"claimant_name" validate:"required"`
	Amount       *models.Amount `json:"amount" validate:"required,gte=0"`
	Status       *string        `json:"status"`
	DateFiled    *models.Date   `json:"date_filed"`
	Description  *string        `json:"description"`
	IsApproved   *bool          `json:"is_approved"`
}

// ClaimService validates and mutates claim records. It is the only component
// with write access to the claim store.
type ClaimService struct {
	repo      claimRepository
	logs      claimLogReader
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClaimService constructs a ClaimService.
func NewClaimService(repo claimRepository, logs claimLogReader, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *ClaimService {
	if validate == nil {
		validate = validator.New()
	}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClaimService{repo: repo, logs: logs, audit: audit, validator: validate, logger: logger}
}

// Create files a new claim. Required fields are claim_number, claimant_name and
// amount; omitted optional fields receive defaults. The audit-log append runs in
// the background and is not part of the create's critical path.
func (s *ClaimService) Create(ctx context.Context, req CreateClaimRequest) (*models.Claim, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	number := strings.TrimSpace(req.ClaimNumber)
	exists, err := s.repo.ExistsByNumber(ctx, number)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check claim number uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("claim number %s already exists", number))
	}

	claim := &models.Claim{
		ClaimNumber:  number,
		ClaimantName: strings.TrimSpace(req.ClaimantName),
		Amount:       req.Amount.Float64(),
		Status:       models.StatusPending,
		DateFiled:    models.Today(),
		Description:  req.Description,
	}
	if req.Status != nil && *req.Status != "" {
		claim.Status = *req.Status
	}
	if req.DateFiled != nil && !req.DateFiled.IsZero() {
		claim.DateFiled = *req.DateFiled
	}
	if req.IsApproved != nil {
		claim.IsApproved = *req.IsApproved
	}

	if err := s.repo.Insert(ctx, claim); err != nil {
		// The pre-check races with concurrent creates; the constraint is authoritative.
		if errors.Is(err, repository.ErrDuplicateClaim) {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("claim number %s already exists", number))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create claim")
	}

	if s.audit != nil {
		s.audit.RecordCreated(claim.ClaimNumber)
	}
	return claim, nil
}

// Get looks a claim up by numeric id or claim number. The not-found error echoes
// the original identifier.
func (s *ClaimService) Get(ctx context.Context, identifier string) (*models.Claim, error) {
	ref := models.ResolveClaimRef(identifier)
	claim, err := s.repo.FindByRef(ctx, ref)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Claim with id %s not found (custom handler)", identifier))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load claim")
	}
	return claim, nil
}

// List returns claims, optionally restricted to an exact status match.
func (s *ClaimService) List(ctx context.Context, status string) ([]models.Claim, error) {
	claims, err := s.repo.List(ctx, models.ClaimFilter{Status: strings.TrimSpace(status)})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list claims")
	}
	return claims, nil
}

// Logs returns all audit entries in insertion order.
func (s *ClaimService) Logs(ctx context.Context) ([]models.ClaimLog, error) {
	logs, err := s.logs.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list claim logs")
	}
	return logs, nil
}

// validationError maps validator output onto the error taxonomy, naming the
// first offending field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("missing required field: %s", fe.Field()))
		}
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid value for field: %s", fe.Field()))
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid claim payload")
}
