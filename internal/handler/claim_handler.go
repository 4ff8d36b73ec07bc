package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meridian-ins/claims-api/internal/models"
	"github.com/meridian-ins/claims-api/internal/service"
	appErrors "github.com/meridian-ins/claims-api/pkg/errors"
	"github.com/meridian-ins/claims-api/pkg/response"
)

// ClaimService is the claim surface the handler needs.
type ClaimService interface {
	Create(ctx context.Context, req service.CreateClaimRequest) (*models.Claim, error)
	Get(ctx context.Context, identifier string) (*models.Claim, error)
	List(ctx context.Context, status string) ([]models.Claim, error)
	Logs(ctx context.Context) ([]models.ClaimLog, error)
}

// ClaimHandler wires the claim service to HTTP routes.
type ClaimHandler struct {
	claims ClaimService
}

// NewClaimHandler constructs a ClaimHandler.
func NewClaimHandler(claims ClaimService) *ClaimHandler {
	return &ClaimHandler{claims: claims}
}

// Create godoc
// @Summary File a new claim
// @Tags Claims
// @Accept json
// @Produce json
// @Param payload body service.CreateClaimRequest true "Claim payload"
// @Success 201 {object} models.Claim
// @Router /claims [post]
func (h *ClaimHandler) Create(c *gin.Context) {
	var req service.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid claim payload: "+err.Error()))
		return
	}
	claim, err := h.claims.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, claim)
}

// List godoc
// @Summary List claims
// @Tags Claims
// @Produce json
// @Param status query string false "Filter by exact claim status (e.g. pending, approved)"
// @Success 200 {array} models.Claim
// @Router /claims [get]
func (h *ClaimHandler) List(c *gin.Context) {
	claims, err := h.claims.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claims)
}

// Get godoc
// @Summary Fetch a claim by id or claim number
// @Tags Claims
// @Produce json
// @Param identifier path string true "Numeric id or claim number"
// @Success 200 {object} models.Claim
// @Failure 404 {object} response.Detail
// @Router /claims/{identifier} [get]
func (h *ClaimHandler) Get(c *gin.Context) {
	claim, err := h.claims.Get(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claim)
}

// Logs godoc
// @Summary List audit log entries
// @Tags Logs
// @Produce json
// @Success 200 {array} models.ClaimLog
// @Router /logs [get]
func (h *ClaimHandler) Logs(c *gin.Context) {
	logs, err := h.claims.Logs(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs)
}
