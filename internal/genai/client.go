// Package genai requests prescriptive incident-response playbooks from the
// Google generative-language API.
package genai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/theopenlane/httpsling"
)

const (
	// defaultBaseURL is the root endpoint for the generative-language API
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// defaultModel is the text-generation model used for playbooks
	defaultModel = "gemini-1.5-flash-latest"
	// defaultRequestTimeout bounds a single generation call. Playbook
	// generation regularly takes tens of seconds on larger findings.
	defaultRequestTimeout = 60 * time.Second
)

// Client calls the generative-language API
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base URL
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithModel overrides the default generation model
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// New creates a generative-language client with the provided API key
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client := &Client{
		apiKey:     apiKey,
		model:      defaultModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// generateURL constructs the generateContent endpoint with the key as a
// query parameter, which is how this API authenticates
func (c *Client) generateURL() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
}

// generateRequest is the request body for generateContent
type generateRequest struct {
	Contents []content `json:"contents"`
}

// content is one conversation turn
type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

// part is a single text fragment within a turn
type part struct {
	Text string `json:"text"`
}

// generateResponse is the subset of the generateContent response we consume
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

// candidate is one generated completion
type candidate struct {
	Content content `json:"content"`
}

// GeneratePlaybook sends the findings to the generation API and returns the
// first candidate's text. A single attempt is made; failures are returned to
// the caller, not retried.
func (c *Client) GeneratePlaybook(ctx context.Context, findings string) (string, error) {
	body := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: playbookSystemPrompt}}},
			{Role: "user", Parts: []part{{Text: playbookUserPrompt(findings)}}},
		},
	}

	requester := httpsling.MustNew(
		httpsling.URL(c.generateURL()),
		httpsling.Post(),
		httpsling.Body(body),
		httpsling.WithDoer(c.httpClient),
	)

	var genResp generateResponse

	resp, err := requester.ReceiveWithContext(ctx, &genResp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
