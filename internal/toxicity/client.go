// Package toxicity calls an external comment-analysis service and returns
// its attribute confidences as a flat map. The engine degrades to the other
// adapters whenever this client fails.
package toxicity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

// Config drives the classifier client behaviour.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// ErrMissingCredentials is returned when the client cannot authenticate.
var ErrMissingCredentials = errors.New("toxicity client missing api key")

// Attributes requested on every call. Unknown ones in the response are
// dropped during normalization.
var requestedAttributes = []string{
	"TOXICITY",
	"SEVERE_TOXICITY",
	"INSULT",
	"PROFANITY",
	"THREAT",
	"IDENTITY_ATTACK",
	"SEXUALLY_EXPLICIT",
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zerolog.Logger
}

func NewClient(cfg Config, logger *zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingCredentials
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://commentanalyzer.googleapis.com"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		logger:     logger,
	}, nil
}

func (c *Client) Source() models.Source {
	return models.SourceExternalClassifier
}

type analyzeRequest struct {
	Comment             comment             `json:"comment"`
	Languages           []string            `json:"languages"`
	RequestedAttributes map[string]struct{} `json:"requestedAttributes"`
}

type comment struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	AttributeScores map[string]attributeScore `json:"attributeScores"`
}

type attributeScore struct {
	SummaryScore summaryScore `json:"summaryScore"`
}

type summaryScore struct {
	Value float64 `json:"value"`
}

// Analyze scores the content and returns attribute -> confidence in [0,1].
func (c *Client) Analyze(ctx context.Context, content string) (map[string]any, error) {
	attrs := make(map[string]struct{}, len(requestedAttributes))
	for _, a := range requestedAttributes {
		attrs[a] = struct{}{}
	}

	body, err := json.Marshal(analyzeRequest{
		Comment:             comment{Text: content},
		Languages:           []string{"en"},
		RequestedAttributes: attrs,
	})
	if err != nil {
		return nil, fmt.Errorf("serialize classifier request: %w", err)
	}

	endpoint := c.baseURL + "/v1alpha1/comments:analyze?key=" + url.QueryEscape(c.apiKey)

	resp, err := c.post(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}

	// 429 and 5xx get a single retry inside the adapter timeout.
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		resp.Body.Close()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
		resp, err = c.post(ctx, endpoint, body)
		if err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier api status %d", resp.StatusCode)
	}

	var payload analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}

	out := make(map[string]any, len(payload.AttributeScores))
	for attr, score := range payload.AttributeScores {
		out[attr] = score.SummaryScore.Value
	}

	c.logger.Debug().
		Int("attributes", len(out)).
		Msg("classifier call complete")
	return out, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	return resp, nil
}
