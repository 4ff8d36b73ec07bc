package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/meridian-ins/claims-api/internal/models"
)

// ClaimLogRepository manages the append-only audit log. Rows are inserted once
// and never updated or deleted.
type ClaimLogRepository struct {
	db *sqlx.DB
}

// NewClaimLogRepository constructs a ClaimLogRepository.
func NewClaimLogRepository(db *sqlx.DB) *ClaimLogRepository {
	return &ClaimLogRepository{db: db}
}

// Append stores an audit entry and assigns its serial id.
func (r *ClaimLogRepository) Append(ctx context.Context, log *models.ClaimLog) error {
	if log.Timestamp.IsZero() {
		log.Timestamp = models.Today()
	}
	const query = `INSERT INTO claim_logs (claim_id, action, message, timestamp) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &log.ID, query, log.ClaimID, log.Action, log.Message, log.Timestamp); err != nil {
		return fmt.Errorf("append claim log: %w", err)
	}
	return nil
}

// List returns all audit entries in insertion order.
func (r *ClaimLogRepository) List(ctx context.Context) ([]models.ClaimLog, error) {
	const query = `SELECT id, claim_id, action, message, timestamp FROM claim_logs ORDER BY id`
	logs := []models.ClaimLog{}
	if err := r.db.SelectContext(ctx, &logs, query); err != nil {
		return nil, fmt.Errorf("list claim logs: %w", err)
	}
	return logs, nil
}
