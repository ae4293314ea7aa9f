// Package advisory talks to an Ollama-compatible model server and turns its
// answers into structured advice about a Markdown document.
package advisory

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

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/locale"
)

// Paths on the model server.
const (
	ChatPath = "/api/chat"
	PullPath = "/api/pull"
)

// RequestIDHeader carries the per-request UUID.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of an error response is kept for messages.
const maxErrorBody = 512

// Analyzer produces advice for a Markdown document.
type Analyzer interface {
	Analyze(ctx context.Context, markdown string) (*Result, error)
}

// Client is the HTTP adapter for the model server.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *log.Logger
	messages   *locale.Catalog
}

var _ Analyzer = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Timeouts come from Config and are
// applied per call through the request context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing and malformed responses.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New validates cfg and creates a Client. Zero fields take their defaults.
// An invalid endpoint is reported as a *ConfigError before any request.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     logging.Default(),
		messages:   locale.Lookup(cfg.Language),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Model returns the model identifier.
func (c *Client) Model() string {
	return c.cfg.Model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format"`
	Options  chatOptions   `json:"options"`
}

type chatResponse struct {
	Message *chatMessage `json:"message"`
}

// Analyze sends the truncated Markdown to the chat endpoint and parses the
// advice. Transport failures, timeouts, and non-2xx responses return an error
// matching ErrUnavailable. A response that cannot be parsed never errors: it
// yields a Result holding a single diagnostic suggestion.
func (c *Client) Analyze(ctx context.Context, markdown string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	text := Truncate(markdown, c.cfg.MaxInputChars)
	payload := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt(c.messages.LanguageName)},
			{Role: "user", Content: UserPrompt(text)},
		},
		Stream:  false,
		Format:  "json",
		Options: chatOptions{Temperature: c.cfg.Temperature},
	}

	started := time.Now()
	resp, requestID, err := c.post(ctx, ChatPath, payload)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.unavailable(ChatPath, 0, "failed to read response body", err)
	}

	result, parseErr := c.parseChat(body)
	if parseErr != nil {
		c.logger.Warn("advisory response could not be parsed",
			logging.FieldRequestID, requestID,
			logging.FieldModel, c.cfg.Model,
			logging.FieldError, parseErr)
		return diagnosticResult(c.messages.MalformedResponse), nil
	}

	c.logger.Debug("advisory response parsed",
		logging.FieldRequestID, requestID,
		logging.FieldFindings, result.Len(),
		logging.FieldDuration, time.Since(started))
	return result, nil
}

// parseChat decodes the outer chat envelope and then the JSON string held in
// message.content.
func (c *Client) parseChat(body []byte) (*Result, error) {
	var envelope chatResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &MalformedResponseError{Message: "response body is not JSON", Content: clip(string(body)), Cause: err}
	}
	if envelope.Message == nil {
		return nil, &MalformedResponseError{Message: "response has no message", Content: clip(string(body))}
	}
	return ParseContent(envelope.Message.Content)
}

// ParseContent validates and decodes the model's JSON answer. Missing keys
// become empty slices.
func ParseContent(content string) (*Result, error) {
	cleaned := CleanJSONBlock(content)
	if cleaned == "" {
		return nil, &MalformedResponseError{Message: "empty content"}
	}
	if err := validateContent(cleaned); err != nil {
		return nil, &MalformedResponseError{Message: "content does not match the result schema", Content: clip(cleaned), Cause: err}
	}

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &MalformedResponseError{Message: "content is not valid JSON", Content: clip(cleaned), Cause: err}
	}
	return result.normalize(), nil
}

// post sends a JSON body and returns the response when the status is 2xx.
// The caller owns the response body.
func (c *Client) post(ctx context.Context, path string, payload any) (*http.Response, string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("encode %s request: %w", path, err)
	}

	url := c.cfg.Endpoint + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, "", c.unavailable(path, 0, "failed to create request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	c.logger.Debug("advisory request",
		logging.FieldEndpoint, url,
		logging.FieldModel, c.cfg.Model,
		logging.FieldRequestID, requestID,
		logging.FieldChars, len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		msg := "HTTP request failed"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "request timed out"
		}
		return nil, requestID, c.unavailable(path, 0, msg, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		return nil, requestID, c.unavailable(path, resp.StatusCode, strings.TrimSpace(string(snippet)), nil)
	}

	return resp, requestID, nil
}

func (c *Client) unavailable(path string, status int, message string, cause error) error {
	return &UnavailableError{
		URL:        c.cfg.Endpoint + path,
		StatusCode: status,
		Message:    message,
		Cause:      cause,
	}
}

func clip(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	return Truncate(s, maxErrorBody)
}
