package dto

import (
	"net/http"
	"strings"
)

// Error codes produced by the HTTP layer itself
const (
	CodeInvalidJSON  = "INVALID_JSON"
	CodeInvalidID    = "INVALID_ID"
	CodeInvalidQuery = "INVALID_QUERY"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes missing from the map fall back by prefix, then to 500.
var errorCodeHTTPStatus = map[string]int{
	"NOT_FOUND": http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"ALREADY_PUBLISHED":    http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,

	"FORBIDDEN": http.StatusForbidden,

	"INVALID_JSON":     http.StatusBadRequest,
	"INVALID_ID":       http.StatusBadRequest,
	"INVALID_QUERY":    http.StatusBadRequest,
	"VALIDATION_ERROR": http.StatusBadRequest,
	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_PASSWORD": http.StatusBadRequest,

	// Business-rule violations on otherwise well-formed requests
	"INVALID_STATE": http.StatusUnprocessableEntity,
	"NOT_PUBLISHED": http.StatusUnprocessableEntity,

	"RATE_LIMITED": http.StatusTooManyRequests,

	"INTERNAL_ERROR": http.StatusInternalServerError,
}

// HTTPStatus resolves the HTTP status code for a domain error code
func HTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	// Domain validation codes follow the INVALID_<FIELD> convention
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
