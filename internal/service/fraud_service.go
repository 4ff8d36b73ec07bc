package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/meridian-ins/claims-api/internal/models"
	appErrors "github.com/meridian-ins/claims-api/pkg/errors"
)

type fraudClaimRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Claim, error)
}

// ClassifierFactory constructs the shared classifier handle. It runs at most
// once, on first use; the expensive construction is deferred until a caller
// actually needs a fraud assessment.
type ClassifierFactory func() (Classifier, error)

// FraudService formats claims into natural-language descriptions and scores
// them against a fixed fraudulent/not-fraudulent label set.
type FraudService struct {
	claims   fraudClaimRepository
	cache    *CacheService
	cacheTTL time.Duration
	factory  ClassifierFactory
	metrics  *MetricsService
	logger   *zap.Logger

	once       sync.Once
	classifier Classifier
	initErr    error
}

// NewFraudService constructs a FraudService. The classifier is not built here.
func NewFraudService(claims fraudClaimRepository, cache *CacheService, factory ClassifierFactory, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *FraudService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FraudService{
		claims:   claims,
		cache:    cache,
		cacheTTL: cacheTTL,
		factory:  factory,
		metrics:  metrics,
		logger:   logger,
	}
}

// Assess scores the referenced claim. Labels and scores come back verbatim from
// the classifier, ranked by descending confidence; the first entry is the
// prediction.
func (s *FraudService) Assess(ctx context.Context, claimID int64) (*models.FraudAssessment, error) {
	claim, err := s.claims.FindByID(ctx, claimID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Claim with id %d not found (custom handler)", claimID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load claim")
	}

	cacheKey := fmt.Sprintf("fraud:claim:%d", claimID)
	var cached models.FraudAssessment
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	classifier, err := s.getClassifier()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("fraud classifier unavailable: %v", err))
	}

	text := claimText(claim)
	start := time.Now()
	result, err := classifier.Classify(ctx, text, models.FraudLabels)
	s.metrics.ObserveClassification(time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("fraud classification failed: %v", err))
	}
	if len(result.Labels) == 0 {
		return nil, appErrors.Clone(appErrors.ErrUpstream, "fraud classifier returned no labels")
	}

	assessment := &models.FraudAssessment{
		ClaimID:          claimID,
		ClaimText:        text,
		Labels:           result.Labels,
		Scores:           result.Scores,
		PredictedLabel:   result.Labels[0],
		FraudProbability: result.Scores[0],
	}

	if err := s.cache.Set(ctx, cacheKey, assessment, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache fraud assessment", zap.Int64("claim_id", claimID), zap.Error(err))
	}
	return assessment, nil
}

// getClassifier builds the shared classifier exactly once. Concurrent callers
// block until the first construction completes, then share the handle without
// further locking.
func (s *FraudService) getClassifier() (Classifier, error) {
	s.once.Do(func() {
		s.logger.Info("constructing fraud classifier")
		s.classifier, s.initErr = s.factory()
	})
	return s.classifier, s.initErr
}

// claimText renders the fixed-template description submitted to the classifier.
func claimText(claim *models.Claim) string {
	description := ""
	if claim.Description != nil {
		description = *claim.Description
	}
	return fmt.Sprintf("Claimant: %s, Amount: %v, Status: %s, Description: %s",
		claim.ClaimantName, claim.Amount, claim.Status, description)
}
