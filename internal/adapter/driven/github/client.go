// Package github implements the RepositoryPager port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit/github_primary_ratelimit"
	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit/github_secondary_ratelimit"

	"github.com/ericfisherdev/gitscripts/internal/adapter/driven/transport"
	"github.com/ericfisherdev/gitscripts/internal/domain/model"
	"github.com/ericfisherdev/gitscripts/internal/domain/port/driven"
)

// perPage is the page size requested from the list endpoint; 100 is GitHub's maximum.
const perPage = 100

// Compile-time interface satisfaction check.
var _ driven.RepositoryPager = (*Client)(nil)

// Client implements the driven.RepositoryPager port using the go-github library.
type Client struct {
	gh     *gh.Client
	logger *slog.Logger
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. go-github-ratelimit (primary and secondary rate limit detection, never sleeping)
//  2. httpcache (ETag-based conditional request caching)
//  3. request logging
//  4. "Authorization: token <token>" header, sent to the API host only
//  5. base, or http.DefaultTransport when nil
//
// A rate-limited response is handed back to the caller instead of being
// retried, so a rejected page ends the listing.
//
// baseURL must end with a slash, e.g. "https://api.github.com/".
func NewClient(baseURL, token string, timeout time.Duration, base http.RoundTripper, logger *slog.Logger) (*Client, error) {
	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	logger = orDefault(logger)

	logTransport := &transport.Logging{Logger: logger, Base: transport.TokenAuth(u.Host, token, base)}
	cacheTransport := httpcache.NewMemoryCacheTransport()
	cacheTransport.Transport = logTransport
	rateLimitClient := github_ratelimit.NewClient(cacheTransport,
		github_secondary_ratelimit.WithSingleSleepLimit(0, func(cbCtx *github_secondary_ratelimit.CallbackContext) {
			logger.Warn("github secondary rate limit hit", "path", requestPath(cbCtx.Request), "reset", resetTime(cbCtx.ResetTime))
		}),
		github_primary_ratelimit.WithLimitDetectedCallback(func(cbCtx *github_primary_ratelimit.CallbackContext) {
			logger.Warn("github primary rate limit hit", "category", cbCtx.Category, "reset", resetTime(cbCtx.ResetTime))
		}),
	)
	rateLimitClient.Timeout = timeout

	return newClient(rateLimitClient, u, logger), nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// The token header and request logging are layered on top of httpClient's transport.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string, logger *slog.Logger) (*Client, error) {
	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	logger = orDefault(logger)

	wrapped := *httpClient
	wrapped.Transport = &transport.Logging{
		Logger: logger,
		Base:   transport.TokenAuth(u.Host, token, httpClient.Transport),
	}
	return newClient(&wrapped, u, logger), nil
}

func newClient(httpClient *http.Client, baseURL *url.URL, logger *slog.Logger) *Client {
	client := gh.NewClient(httpClient)
	client.BaseURL = baseURL
	return &Client{gh: client, logger: logger}
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	return u, nil
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// Pages walks GET users/{username}/repos?per_page=100 and then every rel="next"
// link in turn. Each page is requested only when the consumer pulls it.
func (c *Client) Pages(ctx context.Context, username string) iter.Seq2[model.RepositoryPage, error] {
	return func(yield func(model.RepositoryPage, error) bool) {
		next := fmt.Sprintf("users/%s/repos?per_page=%d", url.PathEscape(username), perPage)

		for page := 1; next != ""; page++ {
			result, err := c.fetchPage(ctx, next, page)
			if err != nil {
				yield(model.RepositoryPage{}, err)
				return
			}
			if !yield(result, nil) {
				return
			}
			next = result.Next
		}
	}
}

// fetchPage requests a single page. cursor is either a path relative to the
// API base URL or the absolute URL of a next link.
func (c *Client) fetchPage(ctx context.Context, cursor string, page int) (model.RepositoryPage, error) {
	req, err := c.gh.NewRequest(http.MethodGet, cursor, nil)
	if err != nil {
		return model.RepositoryPage{}, fmt.Errorf("building request for page %d: %w", page, err)
	}

	var repos []*gh.Repository
	resp, err := c.gh.Do(ctx, req, &repos)
	if err != nil {
		if statusErr := asStatusError(resp, err); statusErr != nil {
			return model.RepositoryPage{}, statusErr
		}
		return model.RepositoryPage{}, fmt.Errorf("listing repositories (page %d): %w", page, err)
	}

	c.logRateLimit(resp, req.URL.Path, page, len(repos))

	summaries := make([]model.RepositorySummary, 0, len(repos))
	for _, r := range repos {
		summaries = append(summaries, mapRepository(r))
	}

	return model.RepositoryPage{
		Repositories: summaries,
		Next:         nextLink(resp.Header.Values("Link")),
	}, nil
}

// asStatusError converts a go-github failure carrying a non-success HTTP
// response into a *driven.StatusError. It returns nil when no response was
// received or the status was a success (for example a body that failed to decode).
// A primary rate limit caught by the transport arrives without a go-github
// response; its status is taken from the rejected response it carries.
func asStatusError(resp *gh.Response, err error) *driven.StatusError {
	var limitErr *github_primary_ratelimit.RateLimitReachedError
	if errors.As(err, &limitErr) && limitErr.Response != nil {
		return &driven.StatusError{
			StatusCode: limitErr.Response.StatusCode,
			Message:    fmt.Sprintf("%s rate limit exceeded until %s", limitErr.Category, resetTime(limitErr.ResetTime)),
		}
	}

	if resp == nil || resp.Response == nil {
		return nil
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := err.Error()
	var ghErr *gh.ErrorResponse
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	switch {
	case errors.As(err, &ghErr):
		message = ghErr.Message
	case errors.As(err, &rateErr):
		message = rateErr.Message
	case errors.As(err, &abuseErr):
		message = abuseErr.Message
	}

	return &driven.StatusError{StatusCode: resp.StatusCode, Message: message}
}

func requestPath(req *http.Request) string {
	if req == nil || req.URL == nil {
		return ""
	}
	return req.URL.Path
}

func resetTime(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.Format(time.RFC3339)
}

// mapRepository converts a go-github Repository to a domain RepositorySummary.
func mapRepository(r *gh.Repository) model.RepositorySummary {
	return model.RepositorySummary{
		Name: r.GetName(),
		URL:  r.GetHTMLURL(),
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func (c *Client) logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	c.logger.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		c.logger.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
