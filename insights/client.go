// Package insights generates natural-language commentary for delay-cost
// analytics using the Gemini REST API.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModels is the fallback chain tried in order until one answers.
var DefaultModels = []string{
	"gemini-2.0-flash-exp",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
}

// ErrNoAPIKey is returned when the client was built without credentials.
var ErrNoAPIKey = errors.New("insights: no API key configured")

type httpClient interface {
	Do(req *retryablehttp.Request) (*http.Response, error)
}

// Client calls the Gemini generateContent endpoint with a model
// fallback chain. It is safe for concurrent use by multiple goroutines.
type Client struct {
	client  httpClient
	apiKey  string
	models  []string
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithModels overrides the model fallback chain.
func WithModels(models []string) Option {
	return func(c *Client) {
		if len(models) > 0 {
			c.models = models
		}
	}
}

// WithBaseURL points the client at a different API host. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc httpClient) Option {
	return func(c *Client) { c.client = hc }
}

func newRetryClient(timeout time.Duration, retryMax int) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.Logger = nil
	client.RetryWaitMin = time.Second
	client.HTTPClient.Timeout = timeout
	return client
}

// New builds a Gemini client. The key may be empty; calls then fail
// with ErrNoAPIKey and callers fall back to canned output.
func New(apiKey string, timeout time.Duration, retryMax int, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		client:  newRetryClient(timeout, retryMax),
		apiKey:  apiKey,
		models:  DefaultModels,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether the client has credentials to call the API.
func (c *Client) Enabled() bool { return c.apiKey != "" }

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func defaultSafetySettings() []safetySetting {
	categories := []string{
		"HARM_CATEGORY_HARASSMENT",
		"HARM_CATEGORY_HATE_SPEECH",
		"HARM_CATEGORY_SEXUALLY_EXPLICIT",
		"HARM_CATEGORY_DANGEROUS_CONTENT",
	}
	settings := make([]safetySetting, 0, len(categories))
	for _, cat := range categories {
		settings = append(settings, safetySetting{Category: cat, Threshold: "BLOCK_NONE"})
	}
	return settings
}

// Generate sends the prompt through the model fallback chain and returns
// the first non-empty completion.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.5,
			TopP:            0.9,
			TopK:            20,
			MaxOutputTokens: 512,
		},
		SafetySettings: defaultSafetySettings(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for _, model := range c.models {
		text, err := c.generateWithModel(ctx, model, body)
		if err == nil && text != "" {
			return text, nil
		}
		if err == nil {
			err = fmt.Errorf("model %s returned an empty completion", model)
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("all models failed: %w", lastErr)
}

func (c *Client) generateWithModel(ctx context.Context, model string, body []byte) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", model, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("model %s: read response: %w", model, err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model %s: status %d: %s", model, res.StatusCode, truncate(string(raw), 200))
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("model %s: decode response: %w", model, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("model %s: api error %d: %s", model, parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
