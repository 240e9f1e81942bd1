package errors

import "net/http"

var ErrDueDateInPast = &Exception{
	Message:    "due date must not be in the past",
	StatusCode: http.StatusBadRequest,
	Kind:       KindValidation,
}
