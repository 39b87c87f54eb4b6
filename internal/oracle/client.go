// Package oracle is the client for the external semantic-similarity service
// that scores each turn's submissions against the chain's current word.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Scorer scores candidate words against a target word. Scores are integers
// in [0,100], keyed by lower-cased candidate word; a candidate missing from
// the map scored zero.
type Scorer interface {
	Score(ctx context.Context, target string, candidates []string) (map[string]int, error)
}

// Client is an HTTP client for the scoring service
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a scoring client for the given endpoint URL
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type scoreRequest struct {
	Target     string   `json:"target"`
	Candidates []string `json:"candidates"`
}

type scoreResponse struct {
	Scores map[string]interface{} `json:"scores"`
}

// Score requests similarity scores for the candidates against the target.
// The returned map is keyed by lower-cased word. Individual entries that are
// missing or not numeric count as zero; only transport and decode failures
// return an error.
func (c *Client) Score(ctx context.Context, target string, candidates []string) (map[string]int, error) {
	body, err := json.Marshal(&scoreRequest{
		Target:     target,
		Candidates: candidates,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("score request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("oracle returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode score response: %w", err)
	}

	scores := make(map[string]int, len(parsed.Scores))
	for word, raw := range parsed.Scores {
		scores[strings.ToLower(word)] = coerceScore(raw)
	}

	c.logger.Debug("oracle scored candidates",
		"target", target,
		"candidates", len(candidates),
		"duration", time.Since(start),
	)

	return scores, nil
}

// coerceScore converts a decoded JSON value into a score in [0,100].
// Anything non-numeric counts as zero rather than failing the round.
func coerceScore(raw interface{}) int {
	value, ok := raw.(float64)
	if !ok {
		return 0
	}

	score := int(value)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
