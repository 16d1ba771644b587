// Package transport provides the http.RoundTripper layers shared by the API adapters.
package transport

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// HeaderAuth sets a credential header on outgoing requests addressed to Host.
// Requests to any other host, such as a redirect target, pass through without
// the credential. The request is cloned first; RoundTrippers must not mutate
// the caller's request.
type HeaderAuth struct {
	Host   string
	Header string
	Value  string
	Base   http.RoundTripper
}

// TokenAuth returns a HeaderAuth producing GitHub's "Authorization: token <t>" form.
func TokenAuth(host, token string, base http.RoundTripper) *HeaderAuth {
	return &HeaderAuth{Host: host, Header: "Authorization", Value: "token " + token, Base: base}
}

// PrivateTokenAuth returns a HeaderAuth producing GitLab's "PRIVATE-TOKEN: <t>" form.
func PrivateTokenAuth(host, token string, base http.RoundTripper) *HeaderAuth {
	return &HeaderAuth{Host: host, Header: "PRIVATE-TOKEN", Value: token, Base: base}
}

// RoundTrip implements http.RoundTripper.
func (a *HeaderAuth) RoundTrip(req *http.Request) (*http.Response, error) {
	if !strings.EqualFold(req.URL.Host, a.Host) {
		return base(a.Base).RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set(a.Header, a.Value)
	return base(a.Base).RoundTrip(clone)
}

// Logging logs each outgoing request with method, host, path, status, and duration.
// Headers are never logged, so credentials stay out of the log.
type Logging struct {
	Logger *slog.Logger
	Base   http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (l *Logging) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := base(l.Base).RoundTrip(req)
	if err != nil {
		l.logger().Debug("http request failed",
			"method", req.Method,
			"host", req.URL.Host,
			"path", req.URL.Path,
			"duration", time.Since(start).Round(time.Microsecond),
			"error", err,
		)
		return nil, err
	}

	l.logger().Debug("http request",
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return resp, nil
}

func (l *Logging) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

func base(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		return http.DefaultTransport
	}
	return rt
}
