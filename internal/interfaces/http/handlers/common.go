// Common helper functions for HTTP handlers.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.  Detail is populated
// only outside release mode.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// writeError writes an error response with the given message.
func writeError(w http.ResponseWriter, statusCode int, message, detail string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message, Detail: detail})
}

// writeAppError maps application-level errors to HTTP responses.  Client
// errors surface their own message; everything else is masked behind a
// generic message, with the real error carried in detail only when
// exposeDetail is set (non-release mode).
func writeAppError(w http.ResponseWriter, err error, exposeDetail bool) {
	if errors.IsValidation(err) {
		msg := err.Error()
		if appErr, ok := err.(*errors.AppError); ok {
			msg = appErr.Message
		}
		writeError(w, http.StatusBadRequest, msg, "")
		return
	}

	detail := ""
	if exposeDetail {
		detail = err.Error()
	}
	writeError(w, errors.HTTPStatusForCode(errors.GetCode(err)),
		"Failed to generate recommendations", detail)
}
