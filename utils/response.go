package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"alpacafarm/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, ErrorResponse{Error: msg, Code: http.StatusText(code)})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondWithMessage is the {message, id} shape every write endpoint answers with.
func RespondWithMessage(w http.ResponseWriter, statusCode int, msg, id string) {
	resp := M{"message": msg}
	if id != "" {
		resp["id"] = id
	}
	RespondWithJSON(w, statusCode, resp)
}

// RespondWithDomainError maps domain errors to HTTP responses.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		var details any
		if ve, ok := asValidation(err); ok && len(ve.Fields) > 0 {
			details = ve.Fields
		}
		RespondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "validation_error", Details: details})
	case domain.IsUnauthorized(err):
		w.Header().Set("WWW-Authenticate", "Bearer")
		RespondWithJSON(w, http.StatusUnauthorized, ErrorResponse{Error: err.Error(), Code: "unauthorized"})
	case domain.IsForbidden(err):
		RespondWithJSON(w, http.StatusForbidden, ErrorResponse{Error: err.Error(), Code: "forbidden"})
	case domain.IsNotFound(err):
		RespondWithJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	default:
		log.Printf("internal error: %v", err)
		RespondWithJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal_error"})
	}
}

type M map[string]any
