package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "examreg/pkg/domain-errors"
)

// ErrorResponse is the wire shape of every failed request: {"error": "<message>"}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the wire shape of a successful command: {"message": "<text>"}.
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteRawJSON writes an already-encoded JSON document, used to pass provider
// payloads through untouched.
func WriteRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body) //nolint:errcheck // headers already sent
}

// WriteError centralizes domain error translation to HTTP responses.
// The domain error's Message is user-facing; the wrapped cause is never written.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		msg := domainErr.Message
		if msg == "" {
			msg = string(domainErr.Code)
		}
		WriteJSON(w, DomainCodeToHTTPStatus(domainErr.Code), ErrorResponse{Error: msg})
		return
	}

	// Fallback for unexpected errors
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
// A rejected payment signature is a client error (400), not 401: the caller is
// not authenticated at all, the claim it carries is simply not trusted.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeUnauthorized:
		return http.StatusBadRequest
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeInternal, dErrors.CodeUpstreamFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
