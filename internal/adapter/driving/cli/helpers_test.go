package cli_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/ericfisherdev/gitscripts/internal/adapter/driving/cli"
)

// allEnvKeys lists every env var a command reads.
var allEnvKeys = []string{
	"GITHUB_TOKEN",
	"GITHUB_USER",
	"GITHUB_API_URL",
	"ACCESS_TOKEN",
	"GITLAB_INSTANCE",
	"NAMESPACE_ID",
	"GITSCRIPTS_HTTP_TIMEOUT",
}

// isolateEnv unsets every command env var and moves into an empty directory
// so neither the host environment nor a stray .env leaks into a run.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())
}

// output captures what a run printed.
type output struct {
	out bytes.Buffer
	err bytes.Buffer
}

func (o *output) deps() cli.Dependencies {
	return cli.Dependencies{Out: &o.out, Err: &o.err}
}
