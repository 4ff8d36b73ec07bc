package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/meridian-ins/claims-api/pkg/config"
)

// ZeroShotResult is the ranked output of a zero-shot classification: labels and
// scores have equal length and scores are sorted in descending order.
type ZeroShotResult struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Classifier scores a text against arbitrary candidate labels without
// task-specific training.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) (*ZeroShotResult, error)
}

// HTTPClassifier talks to an external zero-shot inference endpoint over JSON.
type HTTPClassifier struct {
	url    string
	model  string
	client *http.Client
}

// NewHTTPClassifier builds a classifier client from configuration.
func NewHTTPClassifier(cfg config.ClassifierConfig) *HTTPClassifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClassifier{
		url:    cfg.URL,
		model:  cfg.Model,
		client: &http.Client{Timeout: timeout},
	}
}

type classifyRequest struct {
	Model           string   `json:"model,omitempty"`
	Inputs          string   `json:"inputs"`
	CandidateLabels []string `json:"candidate_labels"`
}

// Classify submits the text and candidate labels and normalizes the response
// into descending-confidence order.
func (c *HTTPClassifier) Classify(ctx context.Context, text string, labels []string) (*ZeroShotResult, error) {
	payload, err := json.Marshal(classifyRequest{Model: c.model, Inputs: text, CandidateLabels: labels})
	if err != nil {
		return nil, fmt.Errorf("encode classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier call: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read classifier response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned %d: %s", resp.StatusCode, string(body))
	}

	var result ZeroShotResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}
	if len(result.Labels) != len(result.Scores) {
		return nil, fmt.Errorf("classifier returned %d labels but %d scores", len(result.Labels), len(result.Scores))
	}

	sortByScoreDesc(&result)
	return &result, nil
}

func sortByScoreDesc(result *ZeroShotResult) {
	idx := make([]int, len(result.Scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return result.Scores[idx[a]] > result.Scores[idx[b]]
	})

	labels := make([]string, len(idx))
	scores := make([]float64, len(idx))
	for i, j := range idx {
		labels[i] = result.Labels[j]
		scores[i] = result.Scores[j]
	}
	result.Labels = labels
	result.Scores = scores
}
