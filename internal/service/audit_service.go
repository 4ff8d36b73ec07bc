package service

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/meridian-ins/claims-api/internal/models"
	"github.com/meridian-ins/claims-api/pkg/config"
	"github.com/meridian-ins/claims-api/pkg/jobs"
)

const jobTypeClaimCreated = "claim.created"

type auditClaimLookup interface {
	FindByNumber(ctx context.Context, number string) (*models.Claim, error)
}

type auditLogAppender interface {
	Append(ctx context.Context, log *models.ClaimLog) error
}

// AuditService appends audit-log entries for claim mutations on a background
// queue. Appends are best-effort relative to the triggering request: the caller
// gets its response before the log write is guaranteed, and exhausted retries
// are recorded in the process log rather than failing the parent operation.
type AuditService struct {
	claims auditClaimLookup
	logs   auditLogAppender
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewAuditService constructs the audit pipeline. Start must be called before
// entries are recorded.
func NewAuditService(claims auditClaimLookup, logs auditLogAppender, cfg config.AuditConfig, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuditService{claims: claims, logs: logs, logger: logger}
	s.queue = jobs.NewQueue("audit", s.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return s
}

// Start launches the queue workers.
func (s *AuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// QueueDepth reports pending audit jobs, for metrics.
func (s *AuditService) QueueDepth() int {
	return s.queue.Depth()
}

// RecordCreated enqueues a "create" audit entry for the given claim number.
// Enqueue failures are logged, never propagated to the caller.
func (s *AuditService) RecordCreated(claimNumber string) {
	err := s.queue.Enqueue(jobs.Job{Type: jobTypeClaimCreated, Payload: claimNumber})
	if err != nil {
		s.logger.Error("failed to enqueue audit entry",
			zap.String("claim_number", claimNumber),
			zap.Error(err),
		)
	}
}

// handle re-reads the claim by business identifier and appends the log row.
// A claim that cannot be re-read yet produces a row with a NULL claim_id; this
// mirrors a latent race in the create path rather than hiding it.
func (s *AuditService) handle(ctx context.Context, job jobs.Job) error {
	number, ok := job.Payload.(string)
	if !ok {
		s.logger.Error("audit job carries unexpected payload", zap.String("job_id", job.ID))
		return nil
	}

	var claimID *int64
	claim, err := s.claims.FindByNumber(ctx, number)
	switch {
	case err == sql.ErrNoRows:
		s.logger.Warn("claim not readable at log-write time, logging with null claim_id",
			zap.String("claim_number", number),
		)
	case err != nil:
		return fmt.Errorf("load claim %s for audit: %w", number, err)
	default:
		claimID = &claim.ID
	}

	entry := &models.ClaimLog{
		ClaimID: claimID,
		Action:  models.AuditActionCreate,
		Message: fmt.Sprintf("Claim created: %s", number),
	}
	if err := s.logs.Append(ctx, entry); err != nil {
		return fmt.Errorf("append audit entry for %s: %w", number, err)
	}
	return nil
}
