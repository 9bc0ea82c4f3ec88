package httpapi

import (
	"encoding/json"
	"net/http"

	"apistation/pkg/types"
)

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg, Code: status})
}

// writeValidationError writes the 422 payload listing offending fields.
func writeValidationError(w http.ResponseWriter, fields map[string][]string) {
	writeJSON(w, http.StatusUnprocessableEntity, types.ValidationErrorResponse{
		Error:  "validation failed",
		Code:   http.StatusUnprocessableEntity,
		Fields: fields,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
