package errors

import "net/http"

// Persistence wraps a storage-layer failure so callers can match on the
// category while keeping the underlying error reachable via errors.Unwrap.
func Persistence(err error) error {
	return &Exception{
		Message:    "storage operation failed",
		StatusCode: http.StatusInternalServerError,
		Kind:       KindPersistence,
		Err:        err,
	}
}
