// Package handlers holds the HTTP request handlers. Handlers decode and
// validate request DTOs, call the service layer, and map errors onto the
// response taxonomy at the boundary.
package handlers

import (
	"encoding/json"
	"net/http"
)

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}
