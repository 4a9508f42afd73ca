package errors

import "net/http"

// Ошибки клиента
var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidBBox = New(
		"INVALID_BBOX",
		"Missing or invalid bbox params",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = New(
		"INVALID_DATE_RANGE",
		"Invalid date range",
		http.StatusBadRequest,
	)

	ErrInfrastructureNotFound = New(
		"INFRASTRUCTURE_NOT_FOUND",
		"Infrastructure not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		"FORBIDDEN",
		"Access to this infrastructure is restricted",
		http.StatusForbidden,
	)

	ErrTooManyRequests = New(
		"TOO_MANY_REQUESTS",
		"Rate limit exceeded",
		http.StatusTooManyRequests,
	)
)

// Ошибки хранилища и сервера
var (
	// ErrUpstreamUnavailable - хранилище недоступно или не ответило вовремя;
	// клиент может повторить запрос позже
	ErrUpstreamUnavailable = New(
		"UPSTREAM_UNAVAILABLE",
		"Data store is temporarily unavailable",
		http.StatusServiceUnavailable,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

// IsClientError - ошибка вызвана некорректным запросом
func IsClientError(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.StatusCode >= 400 && appErr.StatusCode < 500
}
