package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrPointNotFound = New(
		"POINT_NOT_FOUND",
		"Collection point not found",
		http.StatusNotFound,
	)

	ErrScheduleNotFound = New(
		"SCHEDULE_NOT_FOUND",
		"No collection schedule available for this location",
		http.StatusNotFound,
	)

	ErrScheduleTimeout = New(
		"SCHEDULE_TIMEOUT",
		"Schedule providers did not answer in time",
		http.StatusGatewayTimeout,
	)

	ErrStorageUnavailable = New(
		"STORAGE_UNAVAILABLE",
		"Quota storage is unreachable",
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
