// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package backend is the portal's only door to the authoritative REST backend.

Every screen reads collections and issues mutations through [Client]. The client
attaches the caller's backend token and request id, throttles outbound calls with
a token bucket, and converts every failure into an [apperr.AppError] that keeps the
backend's human-readable message.

Failure semantics:

  - Transport failures (dial, timeout, undecodable body) become BACKEND_UNAVAILABLE.
  - Non-2xx responses are mapped by status class (see [decodeError]).
  - Nothing is retried. The caller surfaces the error and the staff member decides.
*/
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/constants"
	"github.com/taibuivan/tinytales/internal/platform/ctxutil"
)

// maxResponseBytes bounds how much of a backend response body is read.
const maxResponseBytes = 32 << 20

// Options tunes a [Client]. Zero values fall back to sensible defaults.
type Options struct {
	Timeout  time.Duration
	RPS      float64
	Burst    int
	PageSize int

	// ImageMaxWidth bounds uploaded images. Negative disables downscaling.
	ImageMaxWidth int

	// HTTPClient overrides the underlying client (tests, custom transports).
	HTTPClient *http.Client
}

// Client issues JSON requests against the backend.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	pageSize   int

	imageMaxWidth int
}

// NewClient parses baseURL and returns a ready-to-use client.
func NewClient(baseURL string, options Options) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("backend: invalid base URL %q", baseURL)
	}

	if options.Timeout <= 0 {
		options.Timeout = 15 * time.Second
	}
	if options.RPS <= 0 {
		options.RPS = 20
	}
	if options.Burst <= 0 {
		options.Burst = int(options.RPS) * 2
	}
	if options.ImageMaxWidth == 0 {
		options.ImageMaxWidth = defaultImageMaxWidth
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.Timeout}
	}

	return &Client{
		baseURL:    parsed,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(options.RPS), options.Burst),
		pageSize:   clampPageSize(options.PageSize),

		imageMaxWidth: options.ImageMaxWidth,
	}, nil
}

// # Verbs

// Get decodes the JSON response of GET path into out.
func (client *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return client.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends body as JSON and decodes the response into out (which may be nil).
func (client *Client) Post(ctx context.Context, path string, body, out any) error {
	return client.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put sends body as JSON and decodes the response into out (which may be nil).
func (client *Client) Put(ctx context.Context, path string, body, out any) error {
	return client.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch sends body as JSON and decodes the response into out (which may be nil).
func (client *Client) Patch(ctx context.Context, path string, body, out any) error {
	return client.Do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues DELETE path.
func (client *Client) Delete(ctx context.Context, path string) error {
	return client.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Ping checks that the backend answers at all. Any HTTP response counts as alive.
func (client *Client) Ping(ctx context.Context) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL.JoinPath("/health").String(), nil)
	if err != nil {
		return err
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("backend: ping failed: %w", err)
	}
	_ = response.Body.Close()

	if response.StatusCode >= 500 {
		return fmt.Errorf("backend: ping returned status %d", response.StatusCode)
	}
	return nil
}

// # Core

// Do executes one request and decodes a 2xx JSON body into out.
//
// A 204 or empty body leaves out untouched.
func (client *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := client.DoRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	return decodeInto(raw, out)
}

// decodeInto unmarshals a 2xx body. An empty body is not an error.
func decodeInto(raw []byte, out any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperr.BackendUnavailable(fmt.Errorf("backend: decode response: %w", err))
	}
	return nil
}

// DoRaw executes one request and returns the raw 2xx body.
func (client *Client) DoRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("backend: encode %s %s: %w", method, path, err))
		}
		payload = bytes.NewReader(encoded)
	}

	request, err := client.newRequest(ctx, method, path, query, payload)
	if err != nil {
		return nil, err
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	return client.send(request)
}

// newRequest builds an outbound request carrying the portal's standard headers.
func (client *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := client.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("backend: build %s %s: %w", method, path, err))
	}

	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", constants.BackendUserAgent)

	if token := ctxutil.GetBackendToken(ctx); token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		request.Header.Set(constants.HeaderXRequestID, requestID)
	}

	return request, nil
}

// send waits for the limiter, performs the round-trip and classifies the result.
func (client *Client) send(request *http.Request) ([]byte, error) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	if err := client.limiter.Wait(ctx); err != nil {
		return nil, apperr.BackendUnavailable(fmt.Errorf("backend: rate limiter: %w", err))
	}

	startTime := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		logger.WarnContext(ctx, "backend_request_failed",
			slog.String("method", request.Method),
			slog.String("path", request.URL.Path),
			slog.Any("error", err),
		)
		return nil, apperr.BackendUnavailable(err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, apperr.BackendUnavailable(fmt.Errorf("backend: read body: %w", err))
	}

	logger.DebugContext(ctx, "backend_request",
		slog.String("method", request.Method),
		slog.String("path", request.URL.Path),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	if response.StatusCode >= 400 {
		return nil, decodeError(response.StatusCode, raw)
	}

	return raw, nil
}

// PageSize returns the configured page size used by [FetchAll].
func (client *Client) PageSize() int {
	return client.pageSize
}

// clampPageSize keeps a requested page size within 1..BackendMaxPageSize.
func clampPageSize(size int) int {
	if size < 1 || size > constants.BackendMaxPageSize {
		return constants.BackendMaxPageSize
	}
	return size
}
