package handler

import (
	"encoding/json"
	"net/http"

	"github.com/teamjokbo/jokbo/internal/validation"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error response with the given status and message.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// FieldErrors writes field-level validation messages as a 422 response.
func FieldErrors(w http.ResponseWriter, errs validation.FieldErrors) {
	JSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
}
