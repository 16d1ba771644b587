package cli_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/gitscripts/internal/adapter/driving/cli"
)

type repoJSON struct {
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// fakeGitHub serves pages of repositories; each page but the last links to the next.
// A 403 is returned instead of page failPage: a primary rate limit answer, or a
// secondary one with Retry-After when secondary is set.
type fakeGitHub struct {
	pages     [][]repoJSON
	failPage  int
	secondary bool
	calls     atomic.Int32
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		fmt.Sscanf(p, "%d", &page)
	}

	w.Header().Set("Content-Type", "application/json")
	if page == f.failPage {
		if f.secondary {
			w.Header().Set("Retry-After", "30")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"You have exceeded a secondary rate limit. Please wait a few minutes before you try again."}`))
			return
		}
		w.Header().Set("X-RateLimit-Limit", "5000")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Resource", "core")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"API rate limit exceeded"}`))
		return
	}
	if page < len(f.pages) {
		w.Header().Set("Link", fmt.Sprintf(`<http://%s/user/1/repos?per_page=100&page=%d>; rel="next"`, r.Host, page+1))
	}
	json.NewEncoder(w).Encode(f.pages[page-1])
}

// startGitHub serves fake over plain HTTP and points GITHUB_API_URL at it.
func startGitHub(t *testing.T, fake *fakeGitHub) {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	t.Setenv("GITHUB_API_URL", server.URL+"/")
}

func TestRunRepoList_PrintsAllPages(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_USER", "octocat")
	fake := &fakeGitHub{pages: [][]repoJSON{
		{{Name: "alpha", HTMLURL: "https://github.com/octocat/alpha"}, {Name: "beta", HTMLURL: "https://github.com/octocat/beta"}},
		{{Name: "gamma", HTMLURL: "https://github.com/octocat/gamma"}},
	}}
	startGitHub(t, fake)

	var o output
	code := cli.RunRepoList(context.Background(), nil, o.deps())

	assert.Equal(t, 0, code)
	assert.Equal(t,
		"Repo name: alpha - Repo URL: https://github.com/octocat/alpha\n"+
			"Repo name: beta - Repo URL: https://github.com/octocat/beta\n"+
			"Repo name: gamma - Repo URL: https://github.com/octocat/gamma\n",
		o.out.String())
	assert.Empty(t, o.err.String())
	assert.Equal(t, int32(2), fake.calls.Load())
}

func TestRunRepoList_TruncatedListingStillPrints(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_USER", "octocat")
	fake := &fakeGitHub{
		pages: [][]repoJSON{
			{{Name: "alpha", HTMLURL: "https://github.com/octocat/alpha"}},
			{{Name: "beta", HTMLURL: "https://github.com/octocat/beta"}},
			{{Name: "gamma", HTMLURL: "https://github.com/octocat/gamma"}},
		},
		failPage: 2,
	}
	startGitHub(t, fake)

	var o output
	code := cli.RunRepoList(context.Background(), nil, o.deps())

	assert.Equal(t, 0, code)
	assert.Equal(t, "Repo name: alpha - Repo URL: https://github.com/octocat/alpha\n", o.out.String())
	assert.Contains(t, o.err.String(), "status 403")
	assert.Equal(t, int32(2), fake.calls.Load(), "no request after the rejected page")
}

func TestRunRepoList_SecondaryRateLimitTruncates(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_USER", "octocat")
	fake := &fakeGitHub{
		pages: [][]repoJSON{
			{{Name: "alpha", HTMLURL: "https://github.com/octocat/alpha"}},
			{{Name: "beta", HTMLURL: "https://github.com/octocat/beta"}},
		},
		failPage:  2,
		secondary: true,
	}
	startGitHub(t, fake)

	var o output
	start := time.Now()
	code := cli.RunRepoList(context.Background(), nil, o.deps())

	assert.Equal(t, 0, code)
	assert.Equal(t, "Repo name: alpha - Repo URL: https://github.com/octocat/alpha\n", o.out.String())
	assert.Contains(t, o.err.String(), "status 403")
	assert.Equal(t, int32(2), fake.calls.Load(), "the rejected page must not be re-sent")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRunRepoList_MissingEnvMakesNoRequest(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "no token", env: map[string]string{"GITHUB_USER": "octocat"}},
		{name: "no user", env: map[string]string{"GITHUB_TOKEN": "ghp_test"}},
		{name: "neither", env: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			fake := &fakeGitHub{pages: [][]repoJSON{{}}}
			startGitHub(t, fake)

			var o output
			code := cli.RunRepoList(context.Background(), nil, o.deps())

			assert.Equal(t, 1, code)
			assert.Empty(t, o.out.String())
			assert.Equal(t, "Error: GITHUB_TOKEN and GITHUB_USER environment variables must be set.\n", o.err.String())
			assert.Zero(t, fake.calls.Load())
		})
	}
}

func TestRunRepoList_TransportFailure(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_USER", "octocat")
	server := httptest.NewServer(http.NotFoundHandler())
	t.Setenv("GITHUB_API_URL", server.URL+"/")
	server.Close()

	var o output
	code := cli.RunRepoList(context.Background(), nil, o.deps())

	assert.Equal(t, 1, code)
	assert.Empty(t, o.out.String())
	assert.Contains(t, o.err.String(), "failed to retrieve repositories")
}

func TestRunRepoList_RejectsPositionalArguments(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_USER", "octocat")
	fake := &fakeGitHub{pages: [][]repoJSON{{}}}
	startGitHub(t, fake)

	var o output
	code := cli.RunRepoList(context.Background(), []string{"unexpected"}, o.deps())

	assert.Equal(t, 1, code)
	assert.Contains(t, o.err.String(), "Usage: ghrepolist")
	assert.Zero(t, fake.calls.Load())
}

func TestRunRepoList_EnvFile(t *testing.T) {
	isolateEnv(t)
	fake := &fakeGitHub{pages: [][]repoJSON{{{Name: "alpha", HTMLURL: "https://github.com/octocat/alpha"}}}}
	startGitHub(t, fake)

	path := filepath.Join(t.TempDir(), "github.env")
	require.NoError(t, os.WriteFile(path, []byte("GITHUB_TOKEN=ghp_file\nGITHUB_USER=octocat\n"), 0o600))

	var o output
	code := cli.RunRepoList(context.Background(), []string{"--env-file", path}, o.deps())

	assert.Equal(t, 0, code)
	assert.Equal(t, "Repo name: alpha - Repo URL: https://github.com/octocat/alpha\n", o.out.String())
}

func TestRunRepoList_Help(t *testing.T) {
	isolateEnv(t)

	var o output
	code := cli.RunRepoList(context.Background(), []string{"--help"}, o.deps())

	assert.Equal(t, 0, code)
	assert.Contains(t, o.out.String(), "ghrepolist")
}
