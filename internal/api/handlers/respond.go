package handlers

import (
	"encoding/json"
	"net/http"
)

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondMessage writes a plain {"message": ...} body.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondInternalError writes a generic 500 with the underlying error text
// attached for diagnostics.
func respondInternalError(w http.ResponseWriter, err error) {
	respondJSON(w, http.StatusInternalServerError, map[string]string{
		"message": "Internal server error",
		"error":   err.Error(),
	})
}
