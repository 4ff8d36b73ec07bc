package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/meridian-ins/claims-api/pkg/config"
	appErrors "github.com/meridian-ins/claims-api/pkg/errors"
)

// AgentService forwards free-text questions to the external agent. The agent's
// own logic selects and invokes claim tools via authenticated calls back into
// this service's public HTTP surface.
type AgentService struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewAgentService constructs an AgentService with a timeout-bound client.
func NewAgentService(cfg config.AgentConfig, logger *zap.Logger) *AgentService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgentService{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type agentRequest struct {
	Question string `json:"question"`
}

type agentResponse struct {
	Response string `json:"response"`
}

// Dispatch sends the question and returns the agent's textual answer. Any
// failure surfaces as a single upstream error carrying the underlying message;
// no partial results are returned.
func (s *AgentService) Dispatch(ctx context.Context, question string) (string, error) {
	payload, err := json.Marshal(agentRequest{Question: question})
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("encode agent request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("build agent request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("agent call failed: %v", err))
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("read agent response: %v", err))
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("agent dispatch failed", zap.Int("status", resp.StatusCode))
		return "", appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("agent returned %d: %s", resp.StatusCode, string(body)))
	}

	var answer agentResponse
	if err := json.Unmarshal(body, &answer); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("decode agent response: %v", err))
	}
	return answer.Response, nil
}
