package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mentorque/skillmatch/internal/logger"
)

const (
	healthPath  = "/health"
	extractPath = "/extract-skills"
)

// DefaultRequestTimeout bounds an extraction call when no explicit timeout
// is configured. Extraction must never hang a request forever.
const DefaultRequestTimeout = 30 * time.Second

// Client is the HTTP client for the extraction engine. Extract calls are
// independent and safe to run concurrently.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a Client for the engine at baseURL. timeout bounds each
// extraction call end to end; zero or negative falls back to
// DefaultRequestTimeout.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// BaseURL returns the configured engine address.
func (c *Client) BaseURL() string { return c.baseURL }

// Health performs a liveness check. A nil return means the engine answered
// healthy within ctx's deadline.
func (c *Client) Health(ctx context.Context) error {
	endpoint := c.baseURL + healthPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &UnavailableError{Endpoint: endpoint, Message: "failed to build health request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &UnavailableError{
			Endpoint: endpoint,
			Message:  fmt.Sprintf("health check returned status %d", resp.StatusCode),
		}
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return &ProtocolMismatchError{Endpoint: endpoint, Status: resp.StatusCode, Message: "unreadable health payload"}
	}
	if health.Status != "healthy" {
		return &UnavailableError{
			Endpoint: endpoint,
			Message:  fmt.Sprintf("engine reports status %q", health.Status),
		}
	}
	return nil
}

// Extract posts text to the engine and returns the validated, defaulted
// extraction result. An empty or sparse result is a valid outcome, never an
// error.
func (c *Client) Extract(ctx context.Context, text string) (*ExtractResponse, error) {
	endpoint := c.baseURL + extractPath

	payload, err := json.Marshal(ExtractRequest{Text: text, UseFuzzy: true})
	if err != nil {
		return nil, fmt.Errorf("failed to encode extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &UnavailableError{Endpoint: endpoint, Message: "failed to build extraction request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("extracting skills",
		zap.Int("text_length", len(text)),
		zap.String("text_preview", logger.TruncateForLog(text, 120)))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(endpoint, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// The running engine predates the extraction endpoint.
		return nil, &ProtocolMismatchError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Message:  "extraction endpoint not found; engine build is stale",
		}
	case resp.StatusCode != http.StatusOK:
		return nil, &UpstreamError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Detail:   upstreamDetail(body),
		}
	}

	if err := validateExtractPayload(body); err != nil {
		return nil, &ProtocolMismatchError{Endpoint: endpoint, Status: resp.StatusCode, Message: err.Error()}
	}

	var result ExtractResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ProtocolMismatchError{Endpoint: endpoint, Status: resp.StatusCode, Message: "undecodable extraction payload"}
	}
	result.applyDefaults()

	c.log.Debug("extraction complete",
		zap.Int("matches", len(result.Matches)),
		zap.Duration("elapsed", time.Since(start)))
	return &result, nil
}

// classifyTransportError folds a raw transport failure into the taxonomy:
// deadline and i/o timeouts become TimeoutError, everything else (refused
// connections included) becomes UnavailableError.
func classifyTransportError(endpoint string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Endpoint: endpoint, Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Endpoint: endpoint, Cause: err}
	}
	return &UnavailableError{Endpoint: endpoint, Message: "request failed", Cause: err}
}

// upstreamDetail pulls the engine's error detail out of a FastAPI-style
// {"detail": ...} body, falling back to the raw body.
func upstreamDetail(body []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != nil {
		return fmt.Sprintf("%v", payload.Detail)
	}
	detail := strings.TrimSpace(string(body))
	if len(detail) > 500 {
		detail = detail[:500] + "..."
	}
	if detail == "" {
		detail = "no detail provided"
	}
	return detail
}
