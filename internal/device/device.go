// Package device validates the identifiers used to look up speed-test results.
package device

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// InvalidMessage is shown to the viewer when an identifier does not parse.
const InvalidMessage = "The entered UUID is invalid. Please check the format and try again."

// ErrEmpty is returned for blank input. Callers show nothing and fetch nothing.
var ErrEmpty = errors.New("device identifier is empty")

// ValidationError reports an identifier that is not a UUID.
type ValidationError struct {
	Input string
	Err   error
}

func (e *ValidationError) Error() string {
	return InvalidMessage
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ID is a validated device identifier.
type ID struct {
	uuid uuid.UUID
}

// String returns the canonical lower-case dashed form.
func (id ID) String() string {
	return id.uuid.String()
}

// UUID returns the underlying UUID.
func (id ID) UUID() uuid.UUID {
	return id.uuid
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id.uuid == uuid.Nil
}

// Parse validates text as a device identifier. Surrounding whitespace is
// ignored. Dashed, braced, urn:uuid: and 32-digit hex forms are accepted.
func Parse(text string) (ID, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return ID{}, ErrEmpty
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, &ValidationError{Input: text, Err: err}
	}
	return ID{uuid: u}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) ID {
	id, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return id
}
