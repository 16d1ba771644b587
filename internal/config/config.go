// Package config loads command configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultGitHubAPIURL = "https://api.github.com/"
	defaultHTTPTimeout  = 30 * time.Second
)

// MissingError reports required environment variables that were unset or empty.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Keys, ", ")
}

// ListerConfig holds the settings of the repository lister.
type ListerConfig struct {
	GitHubToken    string
	GitHubUsername string
	APIBaseURL     string
	HTTPTimeout    time.Duration
}

// CreatorConfig holds the settings of the project creator.
type CreatorConfig struct {
	AccessToken    string
	GitLabInstance string
	NamespaceID    string
	HTTPTimeout    time.Duration
}

// LoadDotEnv loads variables from a dotenv file without overriding variables
// already present in the process environment. When path is empty, .env in the
// working directory is loaded if it exists.
func LoadDotEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading env file %s: %w", path, err)
		}
		return nil
	}

	if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// LoadLister reads GITHUB_TOKEN and GITHUB_USER (both required), plus the
// optional GITHUB_API_URL (default https://api.github.com/) and
// GITSCRIPTS_HTTP_TIMEOUT (default 30s).
func LoadLister() (*ListerConfig, error) {
	token := os.Getenv("GITHUB_TOKEN")
	username := os.Getenv("GITHUB_USER")

	var missing []string
	if token == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if username == "" {
		missing = append(missing, "GITHUB_USER")
	}
	if len(missing) > 0 {
		return nil, &MissingError{Keys: missing}
	}

	apiURL := defaultGitHubAPIURL
	if v, ok := os.LookupEnv("GITHUB_API_URL"); ok && v != "" {
		apiURL = v
	}
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}

	timeout, err := loadTimeout()
	if err != nil {
		return nil, err
	}

	return &ListerConfig{
		GitHubToken:    token,
		GitHubUsername: username,
		APIBaseURL:     apiURL,
		HTTPTimeout:    timeout,
	}, nil
}

// LoadCreator reads ACCESS_TOKEN and GITLAB_INSTANCE (both required), plus the
// optional NAMESPACE_ID and GITSCRIPTS_HTTP_TIMEOUT (default 30s).
// GITLAB_INSTANCE is a hostname; an https:// URL is reduced to its host, and
// any other scheme is rejected.
func LoadCreator() (*CreatorConfig, error) {
	token := os.Getenv("ACCESS_TOKEN")
	instance := strings.TrimSpace(os.Getenv("GITLAB_INSTANCE"))

	var missing []string
	if token == "" {
		missing = append(missing, "ACCESS_TOKEN")
	}
	if instance == "" {
		missing = append(missing, "GITLAB_INSTANCE")
	}
	if len(missing) > 0 {
		return nil, &MissingError{Keys: missing}
	}

	host, err := instanceHost(instance)
	if err != nil {
		return nil, err
	}

	timeout, err := loadTimeout()
	if err != nil {
		return nil, err
	}

	return &CreatorConfig{
		AccessToken:    token,
		GitLabInstance: host,
		NamespaceID:    os.Getenv("NAMESPACE_ID"),
		HTTPTimeout:    timeout,
	}, nil
}

func loadTimeout() (time.Duration, error) {
	v, ok := os.LookupEnv("GITSCRIPTS_HTTP_TIMEOUT")
	if !ok || v == "" {
		return defaultHTTPTimeout, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("GITSCRIPTS_HTTP_TIMEOUT has invalid duration %q: %w", v, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("GITSCRIPTS_HTTP_TIMEOUT must be positive, got %s", parsed)
	}
	return parsed, nil
}

// instanceHost returns the host[:port] named by GITLAB_INSTANCE, which may be
// given bare or as an https URL.
func instanceHost(instance string) (string, error) {
	if !strings.Contains(instance, "://") {
		host := strings.TrimRight(instance, "/")
		if host == "" {
			return "", fmt.Errorf("GITLAB_INSTANCE has no host: %q", instance)
		}
		return host, nil
	}

	u, err := url.Parse(instance)
	if err != nil {
		return "", fmt.Errorf("GITLAB_INSTANCE is not a valid URL: %w", err)
	}
	if !strings.EqualFold(u.Scheme, "https") {
		return "", fmt.Errorf("GITLAB_INSTANCE must be a hostname or an https URL, got scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("GITLAB_INSTANCE has no host: %q", instance)
	}
	return u.Host, nil
}
