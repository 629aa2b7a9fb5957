package web

// errors.go provides unified error response handling for the web layer.
// Handlers never render raw error strings: every failure goes through
// core.MapError so clients get a stable support code, while the full
// technical error stays in the server log, correlated by request id.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/fleetledger/internal/core"
	"github.com/JonMunkholm/fleetledger/internal/logging"
)

var errInvalidLimit = errors.New("invalid integer for limit")

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
	Code   string `json:"code"`
}

// respondError logs the technical error and writes the mapped user
// message with the given status.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:  userMsg.Message,
		Action: userMsg.Action,
		Code:   userMsg.Code,
	})
}

// respondServiceError picks the HTTP status from the error's support
// code family, so handlers forwarding service errors stay one-liners.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	s.respondError(w, r, err, statusForError(err))
}

func statusForError(err error) int {
	code := core.MapError(err).Code
	switch {
	case strings.HasPrefix(code, "VAL"):
		return http.StatusBadRequest
	case code == "SCH003" || code == "SCH004":
		return http.StatusNotFound
	case strings.HasPrefix(code, "DB"):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON encodes v and writes it with a 200 status.
func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing left but to log.
		slog.Error("json encode failed", "error", err)
	}
}
