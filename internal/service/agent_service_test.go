package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-ins/claims-api/pkg/config"
	appErrors "github.com/meridian-ins/claims-api/pkg/errors"
)

func newTestAgent(t *testing.T, handler http.HandlerFunc) *AgentService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAgentService(config.AgentConfig{URL: srv.URL}, nil)
}

func TestAgentServiceDispatch(t *testing.T) {
	var received agentRequest
	svc := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(agentResponse{Response: "Claim CLM-1001 is pending."}) //nolint:errcheck
	})

	answer, err := svc.Dispatch(context.Background(), "What is the status of claim CLM-1001?")
	require.NoError(t, err)
	assert.Equal(t, "What is the status of claim CLM-1001?", received.Question)
	assert.Equal(t, "Claim CLM-1001 is pending.", answer)
}

func TestAgentServiceDispatchUpstreamFailure(t *testing.T) {
	svc := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "tool loop exhausted", http.StatusInternalServerError)
	})

	_, err := svc.Dispatch(context.Background(), "anything")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, 500, appErr.Status)
	assert.Equal(t, "UPSTREAM_ERROR", appErr.Code)
	assert.Contains(t, appErr.Message, "agent returned 500")
	assert.Contains(t, appErr.Message, "tool loop exhausted")
}

func TestAgentServiceDispatchConnectionFailure(t *testing.T) {
	svc := NewAgentService(config.AgentConfig{URL: "http://127.0.0.1:1"}, nil)

	_, err := svc.Dispatch(context.Background(), "anything")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, 500, appErr.Status)
	assert.Contains(t, appErr.Message, "agent call failed")
}
