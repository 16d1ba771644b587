// Package gitlab implements the ProjectCreator port against the GitLab REST API v4.
package gitlab

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

	"github.com/ericfisherdev/gitscripts/internal/adapter/driven/transport"
	"github.com/ericfisherdev/gitscripts/internal/domain/model"
	"github.com/ericfisherdev/gitscripts/internal/domain/port/driven"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Compile-time interface satisfaction check.
var _ driven.ProjectCreator = (*Client)(nil)

// Client creates projects on a single GitLab instance.
type Client struct {
	http        *http.Client
	projectsURL string
	logger      *slog.Logger
}

// NewClient creates a Client for https://{host}/api/v4/ that authenticates
// with a PRIVATE-TOKEN header. The header is sent to host only, never to a
// redirect target elsewhere. base is the network transport beneath auth and
// logging; nil means http.DefaultTransport.
func NewClient(host, token string, timeout time.Duration, base http.RoundTripper, logger *slog.Logger) *Client {
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &transport.Logging{
			Logger: logger,
			Base:   transport.PrivateTokenAuth(host, token, base),
		},
	}
	return newClient(httpClient, "https://"+host, logger)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL
// (scheme and host, e.g. an httptest server URL).
// This constructor is intended for testing.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	wrapped := *httpClient
	wrapped.Transport = &transport.Logging{
		Logger: logger,
		Base:   transport.PrivateTokenAuth(u.Host, token, httpClient.Transport),
	}
	return newClient(&wrapped, baseURL, logger), nil
}

func newClient(httpClient *http.Client, baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:        httpClient,
		projectsURL: strings.TrimRight(baseURL, "/") + "/api/v4/projects/",
		logger:      logger,
	}
}

// CreateProject POSTs a form-encoded create request to /api/v4/projects/.
// namespace_id is sent only when req.NamespaceID is non-empty. The request is
// never retried: project creation is not idempotent.
func (c *Client) CreateProject(ctx context.Context, req model.ProjectCreateRequest) (model.ProjectCreateResult, error) {
	form := url.Values{}
	form.Set("name", req.Name)
	form.Set("visibility", req.Visibility)
	if req.NamespaceID != "" {
		form.Set("namespace_id", req.NamespaceID)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.projectsURL, strings.NewReader(form.Encode()))
	if err != nil {
		return model.ProjectCreateResult{}, fmt.Errorf("building create project request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return model.ProjectCreateResult{}, fmt.Errorf("sending create project request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return model.ProjectCreateResult{}, fmt.Errorf("reading create project response: %w", err)
	}

	body, err := compactJSON(raw)
	if err != nil {
		return model.ProjectCreateResult{}, fmt.Errorf("decoding create project response (status %d): %w", resp.StatusCode, err)
	}

	created := resp.StatusCode == http.StatusCreated
	c.logger.Debug("gitlab create project",
		"name", req.Name,
		"namespace_id", req.NamespaceID,
		"status", resp.StatusCode,
		"created", created,
	)

	return model.ProjectCreateResult{
		Created:    created,
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// compactJSON validates raw as a single JSON document and returns it without
// insignificant whitespace.
func compactJSON(raw []byte) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, bytes.TrimSpace(raw)); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}
