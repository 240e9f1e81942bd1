package errors

import "net/http"

var ErrInvalidFilter = &Exception{
	Message:    "invalid filter mode",
	StatusCode: http.StatusBadRequest,
	Kind:       KindValidation,
}
