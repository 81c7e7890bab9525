package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches a RemoteError carrying a 404 status.
var ErrNotFound = errors.New("not found")

// TransportError is returned when a request never produced an HTTP response:
// DNS failures, refused connections, timeouts and cancelled contexts.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError is returned when the users service answers with a non-2xx status.
type RemoteError struct {
	Status     int
	StatusText string
	// Message is the service's own explanation, when the body carried one.
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.Status, e.StatusText)
}

// Is reports whether target is ErrNotFound and the status is 404.
//
//nolint:errorlint
func (e *RemoteError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}
