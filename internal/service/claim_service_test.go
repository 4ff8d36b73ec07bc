package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-ins/claims-api/internal/models"
	"github.com/meridian-ins/claims-api/internal/repository"
	appErrors "github.com/meridian-ins/claims-api/pkg/errors"
)

type stubClaimRepo struct {
	insertID   int64
	insertErr  error
	inserted   *models.Claim
	existing   map[string]bool
	existsErr  error
	byID       map[int64]*models.Claim
	byNumber   map[string]*models.Claim
	listResult []models.Claim
	listErr    error
	lastFilter models.ClaimFilter
	lastRef    models.ClaimRef
}

func (s *stubClaimRepo) Insert(_ context.Context, claim *models.Claim) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	claim.ID = s.insertID
	s.inserted = claim
	return nil
}

func (s *stubClaimRepo) FindByRef(_ context.Context, ref models.ClaimRef) (*models.Claim, error) {
	s.lastRef = ref
	var claim *models.Claim
	if ref.Kind == models.RefID {
		claim = s.byID[ref.ID]
	} else {
		claim = s.byNumber[ref.Number]
	}
	if claim == nil {
		return nil, sql.ErrNoRows
	}
	return claim, nil
}

func (s *stubClaimRepo) List(_ context.Context, filter models.ClaimFilter) ([]models.Claim, error) {
	s.lastFilter = filter
	return s.listResult, s.listErr
}

func (s *stubClaimRepo) ExistsByNumber(_ context.Context, number string) (bool, error) {
	return s.existing[number], s.existsErr
}

type stubLogReader struct {
	logs []models.ClaimLog
	err  error
}

func (s *stubLogReader) List(context.Context) ([]models.ClaimLog, error) {
	return s.logs, s.err
}

type stubAudit struct {
	recorded []string
}

func (s *stubAudit) RecordCreated(claimNumber string) {
	s.recorded = append(s.recorded, claimNumber)
}

func amountOf(v float64) *models.Amount {
	a := models.Amount(v)
	return &a
}

func TestClaimServiceCreateAppliesDefaults(t *testing.T) {
	repo := &stubClaimRepo{insertID: 7}
	audit := &stubAudit{}
	svc := NewClaimService(repo, &stubLogReader{}, audit, nil, nil)

	claim, err := svc.Create(context.Background(), CreateClaimRequest{
		ClaimNumber:  "CLM-1001",
		ClaimantName: "John Doe",
		Amount:       amountOf(500),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), claim.ID)
	assert.Equal(t, models.StatusPending, claim.Status)
	assert.Equal(t, models.Today(), claim.DateFiled)
	assert.False(t, claim.IsApproved)
	assert.Nil(t, claim.Description)
	assert.Equal(t, []string{"CLM-1001"}, audit.recorded)
}

func TestClaimServiceCreateHonoursExplicitFields(t *testing.T) {
	repo := &stubClaimRepo{insertID: 8}
	svc := NewClaimService(repo, &stubLogReader{}, &stubAudit{}, nil, nil)

	status := models.StatusApproved
	filed := models.DateOf(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	desc := "storm damage"
	approved := true
	claim, err := svc.Create(context.Background(), CreateClaimRequest{
		ClaimNumber:  "CLM-1002",
		ClaimantName: "Jane Roe",
		Amount:       amountOf(1250.50),
		Status:       &status,
		DateFiled:    &filed,
		Description:  &desc,
		IsApproved:   &approved,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, claim.Status)
	assert.Equal(t, "2025-01-15", claim.DateFiled.String())
	require.NotNil(t, claim.Description)
	assert.Equal(t, "storm damage", *claim.Description)
	assert.True(t, claim.IsApproved)
	assert.Equal(t, 1250.50, claim.Amount)
}

func TestClaimServiceCreateMissingAmount(t *testing.T) {
	svc := NewClaimService(&stubClaimRepo{}, &stubLogReader{}, &stubAudit{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateClaimRequest{
		ClaimNumber:  "CLM-1003",
		ClaimantName: "John Doe",
	})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "missing required field: amount", appErr.Message)
}

func TestClaimServiceCreateMissingClaimNumber(t *testing.T) {
	svc := NewClaimService(&stubClaimRepo{}, &stubLogReader{}, &stubAudit{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateClaimRequest{
		ClaimantName: "John Doe",
		Amount:       amountOf(500),
	})
	require.Error(t, err)
	assert.Equal(t, "missing required field: claim_number", appErrors.FromError(err).Message)
}

func TestClaimServiceCreateNegativeAmount(t *testing.T) {
	svc := NewClaimService(&stubClaimRepo{}, &stubLogReader{}, &stubAudit{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateClaimRequest{
		ClaimNumber:  "CLM-1004",
		ClaimantName: "John Doe",
		Amount:       amountOf(-10),
	})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "invalid value for field: amount", appErr.Message)
}

func TestClaimServiceCreateDuplicateNumberPreCheck(t *testing.T) {
	repo := &stubClaimRepo{existing: map[string]bool{"CLM-1001": true}}
	audit := &stubAudit{}
	svc := NewClaimService(repo, &stubLogReader{}, audit, nil, nil)

	_, err := svc.Create(context.Background(), CreateClaimRequest{
		ClaimNumber:  "CLM-1001",
		ClaimantName: "John Doe",
		Amount:       amountOf(500),
	})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, "claim number CLM-1001 already exists", appErr.Message)
	assert.Empty(t, audit.recorded)
}

func TestClaimServiceCreateDuplicateNumberConstraintRace(t *testing.T) {
	// The pre-check passed, the insert lost the race at the unique constraint.
	repo := &stubClaimRepo{insertErr: repository.ErrDuplicateClaim}
	svc := NewClaimService(repo, &stubLogReader{}, &stubAudit{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateClaimRequest{
		ClaimNumber:  "CLM-1001",
		ClaimantName: "John Doe",
		Amount:       amountOf(500),
	})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, "claim number CLM-1001 already exists", appErr.Message)
}

func TestClaimServiceCreateInsertFailure(t *testing.T) {
	repo := &stubClaimRepo{insertErr: errors.New("connection reset")}
	svc := NewClaimService(repo, &stubLogReader{}, &stubAudit{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateClaimRequest{
		ClaimNumber:  "CLM-1001",
		ClaimantName: "John Doe",
		Amount:       amountOf(500),
	})
	require.Error(t, err)
	assert.Equal(t, 500, appErrors.FromError(err).Status)
}

func TestClaimServiceGetByID(t *testing.T) {
	repo := &stubClaimRepo{byID: map[int64]*models.Claim{
		42: {ID: 42, ClaimNumber: "CLM-1001"},
	}}
	svc := NewClaimService(repo, &stubLogReader{}, &stubAudit{}, nil, nil)

	claim, err := svc.Get(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), claim.ID)
	assert.Equal(t, models.RefID, repo.lastRef.Kind)
}

func TestClaimServiceGetByNumber(t *testing.T) {
	repo := &stubClaimRepo{byNumber: map[string]*models.Claim{
		"CLM-1001": {ID: 42, ClaimNumber: "CLM-1001"},
	}}
	svc := NewClaimService(repo, &stubLogReader{}, &stubAudit{}, nil, nil)

	claim, err := svc.Get(context.Background(), "CLM-1001")
	require.NoError(t, err)
	assert.Equal(t, int64(42), claim.ID)
	assert.Equal(t, models.RefNumber, repo.lastRef.Kind)
}

func TestClaimServiceGetNotFoundEchoesIdentifier(t *testing.T) {
	svc := NewClaimService(&stubClaimRepo{}, &stubLogReader{}, &stubAudit{}, nil, nil)

	_, err := svc.Get(context.Background(), "999999")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Claim with id 999999 not found (custom handler)", appErr.Message)

	_, err = svc.Get(context.Background(), "CLM-MISSING")
	require.Error(t, err)
	assert.Equal(t, "Claim with id CLM-MISSING not found (custom handler)", appErrors.FromError(err).Message)
}

func TestClaimServiceListPassesStatusFilter(t *testing.T) {
	repo := &stubClaimRepo{listResult: []models.Claim{{ID: 1}, {ID: 2}}}
	svc := NewClaimService(repo, &stubLogReader{}, &stubAudit{}, nil, nil)

	claims, err := svc.List(context.Background(), "  approved ")
	require.NoError(t, err)
	assert.Len(t, claims, 2)
	assert.Equal(t, "approved", repo.lastFilter.Status)
}

func TestClaimServiceLogs(t *testing.T) {
	claimID := int64(42)
	reader := &stubLogReader{logs: []models.ClaimLog{
		{ID: 1, ClaimID: &claimID, Action: models.AuditActionCreate, Message: "Claim created: CLM-1001"},
	}}
	svc := NewClaimService(&stubClaimRepo{}, reader, &stubAudit{}, nil, nil)

	logs, err := svc.Logs(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Claim created: CLM-1001", logs[0].Message)
}
