package driven

import (
	"context"
	"iter"

	"github.com/ericfisherdev/gitscripts/internal/domain/model"
)

// RepositoryPager defines the driven port that walks a user's repository listing.
type RepositoryPager interface {
	// Pages returns a lazy sequence of listing pages for username, in server order.
	// The sequence fetches a page only when the consumer asks for it and ends
	// after the page without a next link. A non-nil error is always the last
	// element: *StatusError when the server rejected the request, any other
	// error when the page could not be fetched or decoded.
	Pages(ctx context.Context, username string) iter.Seq2[model.RepositoryPage, error]
}
