package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/matzehuels/socialgraph/pkg/errors"
)

const maxBodyBytes = 1 << 20

var (
	errNoRoute = apperrors.New(apperrors.ErrCodeNotFound, "no such endpoint")
	errMethod  = apperrors.New(apperrors.ErrCodeUnsupported, "method not allowed")
)

// errorBody is the JSON body of every error response.
type errorBody struct {
	Code      apperrors.Code `json:"code"`
	Message   string         `json:"message"`
	IDs       []string       `json:"ids,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// writeError maps err to a status code and error body. Engine errors are
// translated first, so a missing person becomes 404 with the missing IDs.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	err = apperrors.FromNetwork(err)

	body := errorBody{
		Code:      apperrors.GetCode(err),
		Message:   apperrors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	}
	var e *apperrors.Error
	if errors.As(err, &e) {
		body.IDs = e.IDs
	}
	status := apperrors.HTTPStatus(body.Code)
	if err == errMethod {
		status = http.StatusMethodNotAllowed
	}
	if body.Code == apperrors.ErrCodeInternal {
		body.Message = "internal server error"
	}
	writeJSON(w, status, body)
}

// decode reads a JSON request body into v, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body: %v", err)
	}
	if dec.More() {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid request body: trailing data")
	}
	return nil
}

func invalidInput(format string, args ...any) error {
	return apperrors.New(apperrors.ErrCodeInvalidInput, "%s", fmt.Sprintf(format, args...))
}
