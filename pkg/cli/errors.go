package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getmockd/userdesk/pkg/record"
	"github.com/getmockd/userdesk/pkg/remote"
)

// Common CLI errors
var (
	ErrAborted     = errors.New("aborted")
	ErrNeedsInput  = errors.New("no field flags given and stdin is not a terminal; pass --full-name, --email and --phone")
	ErrNeedsYes    = errors.New("refusing to delete without confirmation; pass --yes when stdin is not a terminal")
	ErrMissingUser = errors.New("user ID is required")
)

// StatusError carries the status message a store left after a failed
// operation, together with the underlying cause.
type StatusError struct {
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	return e.Message
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// ExitError requests a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// FormatError returns a user-friendly message for err, with suggestions for
// the failures an operator can act on.
func FormatError(err error) string {
	msg := "Error: " + err.Error()
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		// Store messages are already phrased for the operator.
		msg = statusErr.Message
	}

	var (
		transportErr  *remote.TransportError
		validationErr *record.ValidationError
		malformedErr  *record.MalformedResponseError
	)
	switch {
	case errors.As(err, &transportErr):
		return msg + `

Suggestions:
  • Start a local service: userdesk serve
  • Check that the users service is reachable at the configured URL
  • Verify the URL with: userdesk config`
	case errors.Is(err, remote.ErrNotFound):
		return msg + `

Suggestions:
  • Check the ID with: userdesk list
  • Verify you're connected to the right service`
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Error: %s %s", flagName(validationErr.Field), validationErr.Message)
	case errors.As(err, &malformedErr):
		return msg + `

The service answered with a body that is not a user record.
Check that --api-url points at the users collection, e.g. http://localhost:8080/api/users`
	}
	return msg
}

// flagName maps a record field to the flag that sets it.
func flagName(field string) string {
	var b strings.Builder
	b.WriteString("--")
	for _, r := range field {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
