package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/triplog/internal/auth"
	"github.com/pkordes/triplog/internal/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure. Fields is set for validation failures and
// maps each failing field to its message.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string, fields map[string]string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: msg, Fields: fields}})
}

// writeServiceError maps a service error onto a status code. what names the
// resource for not-found messages, e.g. "trip".
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, what string) {
	var fe domain.FieldErrors
	switch {
	case errors.As(err, &fe):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "validation failed", fe)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err, domain.ErrValidation), nil)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", what+" not found", nil)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", unwrapMessage(err, domain.ErrConflict), nil)
	case errors.Is(err, auth.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required", nil)
	default:
		s.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

// unwrapMessage extracts the human-readable part of an error wrapping
// sentinel, dropping the "pkg.Type.Method: " prefixes, e.g.
//
//	"service.ReportService.Build: report.Build: validation error: month must be YYYY-MM" -> "month must be YYYY-MM"
//	"service.VehicleService.Add: vehicle "KA01" already exists in the list: conflict" -> "vehicle "KA01" already exists in the list"
func unwrapMessage(err, sentinel error) string {
	msg, tag := err.Error(), sentinel.Error()
	if i := strings.LastIndex(msg, tag+": "); i >= 0 {
		return msg[i+len(tag)+2:]
	}
	msg = strings.TrimSuffix(msg, ": "+tag)
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
