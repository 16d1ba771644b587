package model

import "encoding/json"

// DefaultVisibility is the visibility level used when none is requested.
const DefaultVisibility = "public"

// ProjectCreateRequest describes a GitLab project to create.
// An empty NamespaceID means the project is created in the token owner's
// personal namespace.
type ProjectCreateRequest struct {
	Name        string
	Visibility  string
	NamespaceID string
}

// ProjectCreateResult carries the remote answer to a create request.
// Body is the JSON document returned by the server, either the created
// project or the error details.
type ProjectCreateResult struct {
	Created    bool
	StatusCode int
	Body       json.RawMessage
}
