package odatagen

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for the failure kinds of a generation run.
var (
	// ErrMalformedMetadata is returned when the metadata document is not
	// well-formed XML. It aborts the whole run.
	ErrMalformedMetadata = errors.New("odatagen: malformed metadata")

	// ErrEntityNotFound is returned when a requested entity type does not
	// exist in the metadata document.
	ErrEntityNotFound = errors.New("odatagen: entity not found")

	// ErrSchemaIntegrity is returned when a schema node lacks an attribute
	// that cannot be skipped, such as a PropertyRef without Name.
	ErrSchemaIntegrity = errors.New("odatagen: schema integrity violation")

	// ErrArtifactWrite is returned when a generated artifact cannot be persisted.
	ErrArtifactWrite = errors.New("odatagen: artifact write failed")

	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("odatagen: missing configuration")
)

// NotFoundError represents an error when an entity type is not found.
type NotFoundError struct {
	label string
	name  string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("odatagen: %s %q not found", e.label, e.name)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrEntityNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrEntityNotFound
}

// Label returns the kind of node that was searched for.
func (e *NotFoundError) Label() string {
	return e.label
}

// Name returns the name that was searched for.
func (e *NotFoundError) Name() string {
	return e.name
}

// NewNotFoundError returns a new NotFoundError for the given node kind and name.
func NewNotFoundError(label, name string) *NotFoundError {
	return &NotFoundError{label: label, name: name}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e)
}
