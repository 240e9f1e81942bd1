package errors

import "net/http"

var ErrEmptyTitle = &Exception{
	Message:    "title must not be empty",
	StatusCode: http.StatusBadRequest,
	Kind:       KindValidation,
}
