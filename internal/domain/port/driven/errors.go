package driven

import (
	"fmt"
	"net/http"
)

// StatusError reports that a remote API answered with a non-success status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	text := http.StatusText(e.StatusCode)
	if e.Message == "" {
		return fmt.Sprintf("remote returned %d %s", e.StatusCode, text)
	}
	return fmt.Sprintf("remote returned %d %s: %s", e.StatusCode, text, e.Message)
}
