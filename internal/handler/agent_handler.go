package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/meridian-ins/claims-api/internal/models"
	appErrors "github.com/meridian-ins/claims-api/pkg/errors"
	"github.com/meridian-ins/claims-api/pkg/response"
)

// AgentService dispatches free-text questions to the external agent.
type AgentService interface {
	Dispatch(ctx context.Context, question string) (string, error)
}

// FraudService assesses claims for fraud.
type FraudService interface {
	Assess(ctx context.Context, claimID int64) (*models.FraudAssessment, error)
}

// AgentQuery is the natural-language query payload.
type AgentQuery struct {
	Question string `json:"question" binding:"required"`
}

// AgentAnswer is the agent's textual answer.
type AgentAnswer struct {
	Response string `json:"response"`
}

// AgentHandler wires the agent and fraud adapters to HTTP routes.
type AgentHandler struct {
	agent AgentService
	fraud FraudService
}

// NewAgentHandler constructs an AgentHandler.
func NewAgentHandler(agent AgentService, fraud FraudService) *AgentHandler {
	return &AgentHandler{agent: agent, fraud: fraud}
}

// Query godoc
// @Summary Ask the claims agent a free-text question
// @Tags Agent
// @Accept json
// @Produce json
// @Param payload body AgentQuery true "Question payload"
// @Success 200 {object} AgentAnswer
// @Failure 500 {object} response.Detail
// @Router /agent/query [post]
func (h *AgentHandler) Query(c *gin.Context) {
	var req AgentQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid agent query payload"))
		return
	}
	answer, err := h.agent.Dispatch(c.Request.Context(), req.Question)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, AgentAnswer{Response: answer})
}

// CheckFraud godoc
// @Summary Score a claim against the zero-shot fraud classifier
// @Tags Agent
// @Produce json
// @Param claim_id path int true "Claim id"
// @Success 200 {object} models.FraudAssessment
// @Failure 404 {object} response.Detail
// @Router /agent/check_fraud/{claim_id} [get]
func (h *AgentHandler) CheckFraud(c *gin.Context) {
	raw := c.Param("claim_id")
	claimID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("claim id %q must be an integer", raw)))
		return
	}
	assessment, err := h.fraud.Assess(c.Request.Context(), claimID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessment)
}
