package errors

import "net/http"

// Code is a stable, machine-readable error identifier. It is what API
// clients switch on; messages may change wording.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodePersonNotFound   Code = "PERSON_NOT_FOUND"
	ErrCodeSnapshotNotFound Code = "SNAPSHOT_NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	// Rejected because of the current state of the network.
	ErrCodeAlreadyExists  Code = "ALREADY_EXISTS"
	ErrCodeAlreadyFriends Code = "ALREADY_FRIENDS"
	ErrCodeNotFriends     Code = "NOT_FRIENDS"
	ErrCodeSelfLoop       Code = "SELF_LOOP"

	// A collaborator (store, cache, broker) failed or pushed back.
	ErrCodeStorage     Code = "STORAGE_ERROR"
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

var statusByCode = map[Code]int{
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeInvalidName:   http.StatusBadRequest,
	ErrCodeInvalidFormat: http.StatusBadRequest,
	ErrCodeInvalidPath:   http.StatusBadRequest,

	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodePersonNotFound:   http.StatusNotFound,
	ErrCodeSnapshotNotFound: http.StatusNotFound,
	ErrCodeFileNotFound:     http.StatusNotFound,

	ErrCodeAlreadyExists:  http.StatusConflict,
	ErrCodeAlreadyFriends: http.StatusConflict,
	ErrCodeNotFriends:     http.StatusConflict,
	ErrCodeSelfLoop:       http.StatusUnprocessableEntity,

	ErrCodeStorage:     http.StatusBadGateway,
	ErrCodeNetwork:     http.StatusBadGateway,
	ErrCodeTimeout:     http.StatusGatewayTimeout,
	ErrCodeRateLimited: http.StatusTooManyRequests,

	ErrCodeUnsupported: http.StatusNotImplemented,
}

// HTTPStatus maps a code to the response status used by the API server.
// Unknown codes, the empty code and INVALID_CONFIG (a server-side problem)
// map to 500.
func HTTPStatus(code Code) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
