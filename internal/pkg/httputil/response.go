// Package httputil provides HTTP response helpers and shared middleware.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// JSON writes v as a JSON response. Store results and documents are written
// as-is, without an envelope; a nil document encodes as null, mirroring the
// store's "no document" result.
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Text writes a plain text response.
func Text(w http.ResponseWriter, statusCode int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(text)); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Message writes a {"message": ...} response, the shape used for
// authentication and authorization failures.
func Message(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{"message": message})
}

// Error writes an {"error": ...} response, the shape used for malformed
// requests and upstream gateway failures.
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{"error": message})
}

// ValidationError writes a validation error response. For
// validator.ValidationErrors the failing fields are listed individually.
func ValidationError(w http.ResponseWriter, err error) {
	var details interface{}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		fieldErrors := make([]map[string]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			fieldErrors = append(fieldErrors, map[string]string{
				"field":   e.Field(),
				"message": e.Tag(),
			})
		}
		details = fieldErrors
	} else {
		details = err.Error()
	}

	JSON(w, http.StatusBadRequest, map[string]interface{}{
		"error": map[string]interface{}{
			"message": "validation error",
			"details": details,
		},
	})
}
