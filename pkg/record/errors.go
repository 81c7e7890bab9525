package record

import "fmt"

// MalformedResponseError is returned when a response body cannot be turned
// into user records.
type MalformedResponseError struct {
	// Index is the position of the offending element in a list response, or -1.
	Index  int
	Reason string
}

func (e *MalformedResponseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("malformed response: item %d: %s", e.Index, e.Reason)
	}
	return "malformed response: " + e.Reason
}

// ValidationError is returned when operator input is incomplete.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return e.Message
}

func malformed(index int, format string, args ...interface{}) error {
	return &MalformedResponseError{Index: index, Reason: fmt.Sprintf(format, args...)}
}
