package model

// RepositorySummary is the minimal view of a GitHub repository: its name and
// the web URL a browser can open.
type RepositorySummary struct {
	Name string
	URL  string
}

// RepositoryPage is one decoded page of a repository listing.
// Next holds the absolute URL of the following page and is empty on the last page.
type RepositoryPage struct {
	Repositories []RepositorySummary
	Next         string
}

// RepoListing is the outcome of following a repository listing to its end.
//
// Complete is true only when the final page carried no next link.
// StatusCode is set when the remote rejected a page and the listing was cut short.
// Err is set when a page could not be fetched or decoded at all.
// Repositories always holds every record gathered before the listing stopped.
type RepoListing struct {
	Repositories []RepositorySummary
	Complete     bool
	StatusCode   int
	Err          error
}

// Truncated reports whether the listing stopped before the last page.
func (l RepoListing) Truncated() bool {
	return !l.Complete
}
