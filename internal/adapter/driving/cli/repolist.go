package cli

import (
	"context"
	"errors"
	"fmt"

	githubadapter "github.com/ericfisherdev/gitscripts/internal/adapter/driven/github"
	"github.com/ericfisherdev/gitscripts/internal/application"
	"github.com/ericfisherdev/gitscripts/internal/config"
)

const repoListUsage = "ghrepolist [--env-file PATH] [--verbose]"

type repoListCLI struct {
	Common commonFlags `embed:""`
}

// RunRepoList lists every repository of GITHUB_USER, one line per repository.
//
// Exit codes: 0 when the listing finished or was cut short by a remote
// rejection (the repositories gathered so far are still printed), 1 on usage
// or configuration errors and on transport failures.
func RunRepoList(ctx context.Context, args []string, deps Dependencies) int {
	deps = deps.withDefaults()

	var cli repoListCLI
	code, handled, err := parse(&cli, args, "ghrepolist", "List every GitHub repository of GITHUB_USER.", deps)
	if handled {
		return code
	}
	if err != nil {
		printUsageError(deps.Err, repoListUsage, err)
		return 1
	}

	logger := newLogger(deps.Err, cli.Common.Verbose)
	loadEnvFile(cli.Common, logger)

	cfg, err := config.LoadLister()
	if err != nil {
		var missing *config.MissingError
		if errors.As(err, &missing) {
			fmt.Fprintln(deps.Err, "Error: GITHUB_TOKEN and GITHUB_USER environment variables must be set.")
		} else {
			fmt.Fprintf(deps.Err, "Error: %v\n", err)
		}
		return 1
	}

	client, err := githubadapter.NewClient(cfg.APIBaseURL, cfg.GitHubToken, cfg.HTTPTimeout, deps.Transport, logger)
	if err != nil {
		fmt.Fprintf(deps.Err, "Error: %v\n", err)
		return 1
	}

	svc := application.NewRepoListService(client, logger)
	listing := svc.ListAll(ctx, cfg.GitHubUsername)

	for _, repo := range listing.Repositories {
		fmt.Fprintf(deps.Out, "Repo name: %s - Repo URL: %s\n", repo.Name, repo.URL)
	}

	switch {
	case listing.Err != nil:
		fmt.Fprintf(deps.Err, "Error: failed to retrieve repositories: %v\n", listing.Err)
		return 1
	case listing.Truncated():
		fmt.Fprintf(deps.Err, "Failed to retrieve repositories (status %d); listing is incomplete.\n", listing.StatusCode)
	}
	return 0
}
