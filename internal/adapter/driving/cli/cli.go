// Package cli implements the command-line entry points. Each command parses
// its arguments with kong, loads configuration, wires adapters, and returns a
// process exit code instead of exiting, so runs can be tested end to end.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ericfisherdev/gitscripts/internal/config"
)

// Dependencies holds the injectable parts of a command run.
type Dependencies struct {
	Out io.Writer
	Err io.Writer
	// Transport is the network layer beneath the API clients' own stacks
	// (rate limiting, caching, logging, auth). nil means http.DefaultTransport.
	Transport http.RoundTripper
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Err == nil {
		d.Err = os.Stderr
	}
	return d
}

// commonFlags are shared by every command.
type commonFlags struct {
	EnvFile string `name:"env-file" help:"Load variables from this dotenv file (defaults to .env when present)."`
	Verbose bool   `short:"v" help:"Log API calls and HTTP traffic to stderr."`
}

// parse parses args into cli. handled is true when kong already answered the
// invocation itself (for example --help) and code holds the exit status.
func parse(cli any, args []string, name, description string, deps Dependencies) (code int, handled bool, err error) {
	exitCode := -1
	parser, err := kong.New(cli,
		kong.Name(name),
		kong.Description(description),
		kong.Writers(deps.Out, deps.Err),
		kong.Exit(func(c int) { exitCode = c }),
	)
	if err != nil {
		return 1, false, err
	}

	_, err = parser.Parse(args)
	if exitCode >= 0 {
		return exitCode, true, nil
	}
	return 0, false, err
}

// loadEnvFile loads the dotenv file and warns instead of failing; a missing
// file must not hide the clearer missing-variable message that follows.
func loadEnvFile(flags commonFlags, logger *slog.Logger) {
	if err := config.LoadDotEnv(flags.EnvFile); err != nil {
		logger.Warn("env file not loaded", "error", err)
	}
}

// newLogger builds the stderr logger for a run: warnings by default, debug with --verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func printUsageError(w io.Writer, usage string, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	fmt.Fprintf(w, "Usage: %s\n", usage)
}
