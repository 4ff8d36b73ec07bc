package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/meridian-ins/claims-api/internal/models"
)

// ErrDuplicateClaim signals a uniqueness violation on claim_number (or id). Two
// concurrent creates with the same number race at the constraint; the loser
// receives this error.
var ErrDuplicateClaim = errors.New("duplicate claim")

const uniqueViolation = "23505"

// ClaimRepository manages persistence for claims.
type ClaimRepository struct {
	db *sqlx.DB
}

// NewClaimRepository constructs a ClaimRepository.
func NewClaimRepository(db *sqlx.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

// Insert stores a new claim and assigns its serial id. Defaults for status,
// date_filed and is_approved are expected to be set by the caller.
func (r *ClaimRepository) Insert(ctx context.Context, claim *models.Claim) error {
	const query = `INSERT INTO claims (claim_number, claimant_name, amount, status, date_filed, description, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.GetContext(ctx, &claim.ID, query,
		claim.ClaimNumber,
		claim.ClaimantName,
		claim.Amount,
		claim.Status,
		claim.DateFiled,
		claim.Description,
		claim.IsApproved,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateClaim
		}
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

// FindByID fetches a claim by its numeric id.
func (r *ClaimRepository) FindByID(ctx context.Context, id int64) (*models.Claim, error) {
	const query = `SELECT id, claim_number, claimant_name, amount, status, date_filed, description, is_approved FROM claims WHERE id = $1`
	var claim models.Claim
	if err := r.db.GetContext(ctx, &claim, query, id); err != nil {
		return nil, err
	}
	return &claim, nil
}

// FindByNumber fetches a claim by its business identifier (exact match).
func (r *ClaimRepository) FindByNumber(ctx context.Context, number string) (*models.Claim, error) {
	const query = `SELECT id, claim_number, claimant_name, amount, status, date_filed, description, is_approved FROM claims WHERE claim_number = $1`
	var claim models.Claim
	if err := r.db.GetContext(ctx, &claim, query, number); err != nil {
		return nil, err
	}
	return &claim, nil
}

// FindByRef dispatches on the resolved reference kind.
func (r *ClaimRepository) FindByRef(ctx context.Context, ref models.ClaimRef) (*models.Claim, error) {
	if ref.Kind == models.RefID {
		return r.FindByID(ctx, ref.ID)
	}
	return r.FindByNumber(ctx, ref.Number)
}

// List returns claims, optionally restricted to an exact status match.
func (r *ClaimRepository) List(ctx context.Context, filter models.ClaimFilter) ([]models.Claim, error) {
	query := "SELECT id, claim_number, claimant_name, amount, status, date_filed, description, is_approved FROM claims"
	var args []interface{}
	if filter.Status != "" {
		query += " WHERE status = $1"
		args = append(args, filter.Status)
	}
	query += " ORDER BY id"

	claims := []models.Claim{}
	if err := r.db.SelectContext(ctx, &claims, query, args...); err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	return claims, nil
}

// ExistsByNumber checks whether a claim number is already taken.
func (r *ClaimRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	const query = `SELECT 1 FROM claims WHERE claim_number = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, number); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check claim number: %w", err)
	}
	return true, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
