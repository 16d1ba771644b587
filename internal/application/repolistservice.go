package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ericfisherdev/gitscripts/internal/domain/model"
	"github.com/ericfisherdev/gitscripts/internal/domain/port/driven"
)

// RepoListService gathers every repository of a user by walking the pager to its end.
type RepoListService struct {
	pager  driven.RepositoryPager
	logger *slog.Logger
}

// NewRepoListService creates a new RepoListService.
func NewRepoListService(pager driven.RepositoryPager, logger *slog.Logger) *RepoListService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RepoListService{pager: pager, logger: logger}
}

// ListAll returns the concatenation of every page in server order.
//
// The walk stops at the first failure and keeps whatever was gathered before
// it: a remote rejection sets StatusCode, any other failure sets Err. No
// further pages are requested after a failure. ListAll itself never fails;
// the listing describes how far it got.
func (s *RepoListService) ListAll(ctx context.Context, username string) model.RepoListing {
	listing := model.RepoListing{Repositories: []model.RepositorySummary{}}
	pages := 0

	for page, err := range s.pager.Pages(ctx, username) {
		if err != nil {
			var statusErr *driven.StatusError
			if errors.As(err, &statusErr) {
				listing.StatusCode = statusErr.StatusCode
				s.logger.Debug("repository listing truncated",
					"username", username,
					"pages", pages,
					"repositories", len(listing.Repositories),
					"status", statusErr.StatusCode,
					"error", statusErr.Message,
				)
			} else {
				listing.Err = err
				s.logger.Debug("repository listing failed",
					"username", username,
					"pages", pages,
					"repositories", len(listing.Repositories),
					"error", err,
				)
			}
			return listing
		}

		pages++
		listing.Repositories = append(listing.Repositories, page.Repositories...)
	}

	listing.Complete = true
	s.logger.Debug("repository listing complete",
		"username", username,
		"pages", pages,
		"repositories", len(listing.Repositories),
	)
	return listing
}
