// Package searchapi is the HTTP client for the tutor search API.
package searchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tutor_search_bot/internal/domain/search"
)

// SearchPath is appended to the base URL.
const SearchPath = "/api/search"

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Client implements search.Client over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Entry
}

var _ search.Client = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *logrus.Entry) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for the API at baseURL, e.g.
// "http://localhost:8080". No timeout is applied beyond the caller's
// context.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search issues GET /api/search with the encoded criteria. Failures are
// returned as *search.NetworkError, *search.HTTPError or
// *search.DecodeError.
func (c *Client) Search(ctx context.Context, criteria search.Criteria) (*search.Result, error) {
	query := search.EncodeParams(criteria).Encode()
	requestID := uuid.NewString()
	log := c.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"query":      query,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+SearchPath+"?"+query, nil)
	if err != nil {
		return nil, &search.NetworkError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	log.Debug("Making search request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("Search request failed")
		return nil, &search.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		log.WithField("status", resp.StatusCode).Warn("Search API returned non-success status")
		return nil, &search.HTTPError{StatusCode: resp.StatusCode}
	}

	var result search.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.WithError(err).Warn("Could not decode search response")
		return nil, &search.DecodeError{Err: err}
	}

	log.WithFields(logrus.Fields{
		"teachers":   len(result.Teachers),
		"time_taken": result.TimeTaken,
	}).Debug("Search response received")
	return &result, nil
}
