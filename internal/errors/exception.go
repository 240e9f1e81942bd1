package errors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindPersistence Kind = "persistence"
)

type Exception struct {
	Message    string
	StatusCode int
	Kind       Kind
	Err        error
}

func (e *Exception) Error() string {
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.Err
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func IsValidation(err error) bool {
	var appErr *Exception
	return errors.As(err, &appErr) && appErr.Kind == KindValidation
}
