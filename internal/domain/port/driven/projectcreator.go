package driven

import (
	"context"

	"github.com/ericfisherdev/gitscripts/internal/domain/model"
)

// ProjectCreator defines the driven port for creating a project on a GitLab instance.
type ProjectCreator interface {
	// CreateProject submits req once. A rejection by the server is reported
	// through the result, not as an error; errors mean no usable answer arrived.
	CreateProject(ctx context.Context, req model.ProjectCreateRequest) (model.ProjectCreateResult, error)
}
