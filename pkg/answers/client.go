// Package answers wraps the answer/suggestion collaborator used to turn a
// refined query into a handful of concrete product-name suggestions. Optional:
// a missing API key leaves the pipeline running on the refined query alone.
package answers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/shopsmart-labs/shopsmart-backend/pkg/errors"
)

const (
	defaultBaseURL              = "https://api.answers.example.com/v1"
	defaultMaxSuggestions       = 5
	responseBodyReadLimit int64 = 1024
)

var errAPIKeyRequired = errors.New("answers api key is required")

// Client calls the answer service with a topic query plus intent context and
// returns short product-name suggestions.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxSuggestions int
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured answers base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithMaxSuggestions caps how many suggestions a reply may yield.
func WithMaxSuggestions(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.maxSuggestions = limit
		}
	}
}

// NewClient builds the answers client given an API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		apiKey:         trimmedKey,
		baseURL:        defaultBaseURL,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		maxSuggestions: defaultMaxSuggestions,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client, nil
}

// Suggest asks for concrete product names for the topic, up to the
// configured limit. The response is a comma-separated list; blank fragments
// are dropped.
func (c *Client) Suggest(ctx context.Context, topic, intentContext string) ([]string, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "answers client not configured")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "topic is required")
	}

	body := struct {
		Query   string `json:"query"`
		Context string `json:"context,omitempty"`
	}{
		Query:   topic,
		Context: intentContext,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal suggestion request")
	}

	url := fmt.Sprintf("%s/answers", strings.TrimRight(c.baseURL, "/"))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build suggestion request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute suggestion request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "suggestion request failed")
	}

	var apiResp struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode suggestion response")
	}

	return splitSuggestions(apiResp.Answer, c.maxSuggestions), nil
}

func splitSuggestions(answer string, limit int) []string {
	fragments := strings.Split(answer, ",")
	suggestions := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		trimmed := strings.TrimSpace(fragment)
		if trimmed == "" {
			continue
		}
		suggestions = append(suggestions, trimmed)
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions
}
