package application

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/gitscripts/internal/domain/model"
	"github.com/ericfisherdev/gitscripts/internal/domain/port/driven"
)

// ProjectService creates GitLab projects through the ProjectCreator port.
type ProjectService struct {
	creator driven.ProjectCreator
	logger  *slog.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(creator driven.ProjectCreator, logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectService{creator: creator, logger: logger}
}

// Create submits req exactly once. An empty Visibility falls back to
// model.DefaultVisibility. The project name is passed through unvalidated.
func (s *ProjectService) Create(ctx context.Context, req model.ProjectCreateRequest) (model.ProjectCreateResult, error) {
	if req.Visibility == "" {
		req.Visibility = model.DefaultVisibility
	}

	result, err := s.creator.CreateProject(ctx, req)
	if err != nil {
		return model.ProjectCreateResult{}, err
	}

	if result.Created {
		s.logger.Debug("project created", "name", req.Name, "visibility", req.Visibility)
	} else {
		s.logger.Debug("project creation rejected", "name", req.Name, "status", result.StatusCode)
	}
	return result, nil
}
