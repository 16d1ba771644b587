package cli

import (
	"context"
	"errors"
	"fmt"

	gitlabadapter "github.com/ericfisherdev/gitscripts/internal/adapter/driven/gitlab"
	"github.com/ericfisherdev/gitscripts/internal/application"
	"github.com/ericfisherdev/gitscripts/internal/config"
	"github.com/ericfisherdev/gitscripts/internal/domain/model"
)

const projectCreateUsage = "glprojectcreate [--env-file PATH] [--visibility public|internal|private] [--verbose] 'ProjectName'"

type projectCreateCLI struct {
	Common     commonFlags `embed:""`
	Visibility string      `enum:"public,internal,private" default:"public" help:"Visibility of the new project (${enum})."`
	Name       string      `arg:"" help:"Name of the project to create."`
}

// RunProjectCreate creates one GitLab project named by the single positional argument.
//
// Exit codes: 0 once the server answered, whether it created the project or
// rejected it; 1 on usage or configuration errors, transport failures, and
// answers that are not JSON.
func RunProjectCreate(ctx context.Context, args []string, deps Dependencies) int {
	deps = deps.withDefaults()

	var cli projectCreateCLI
	code, handled, err := parse(&cli, args, "glprojectcreate", "Create a project on a GitLab instance.", deps)
	if handled {
		return code
	}
	if err != nil {
		printUsageError(deps.Err, projectCreateUsage, err)
		return 1
	}

	logger := newLogger(deps.Err, cli.Common.Verbose)
	loadEnvFile(cli.Common, logger)

	cfg, err := config.LoadCreator()
	if err != nil {
		var missing *config.MissingError
		if errors.As(err, &missing) {
			fmt.Fprintln(deps.Err, "Error: Required environment variables are not set.")
		} else {
			fmt.Fprintf(deps.Err, "Error: %v\n", err)
		}
		return 1
	}

	client := gitlabadapter.NewClient(cfg.GitLabInstance, cfg.AccessToken, cfg.HTTPTimeout, deps.Transport, logger)

	svc := application.NewProjectService(client, logger)
	result, err := svc.Create(ctx, model.ProjectCreateRequest{
		Name:        cli.Name,
		Visibility:  cli.Visibility,
		NamespaceID: cfg.NamespaceID,
	})
	if err != nil {
		fmt.Fprintf(deps.Err, "Error: %v\n", err)
		return 1
	}

	if result.Created {
		fmt.Fprintf(deps.Out, "Project '%s' created successfully.\n", cli.Name)
	} else {
		fmt.Fprintln(deps.Out, "Failed to create project.")
	}
	fmt.Fprintln(deps.Out, string(result.Body))
	return 0
}
