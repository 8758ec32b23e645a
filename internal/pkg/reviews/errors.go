package reviews

import (
	"errors"
	"fmt"
)

// ErrDuplicateReview means the author already reviewed this business; the
// caller should switch to Edit.
var ErrDuplicateReview = errors.New("review already exists for this business, edit it instead")

// ErrReviewNotFound means the referenced review does not exist or does not
// belong to the given business.
var ErrReviewNotFound = errors.New("review not found")

// ValidationError reports caller-supplied input that fails the review
// constraints. Recoverable by correcting the input, never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a persistence failure. Safe to retry with backoff on
// the caller's side; the service itself never retries.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("review storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
