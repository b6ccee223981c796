package handlers

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorJSON writes the {"error": msg} envelope every failure response uses.
func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// messageJSON writes the {"message": msg} envelope used by mutations.
func messageJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// createdJSON writes a 201 with the new row's id alongside the message.
func createdJSON(w http.ResponseWriter, msg string, id int64) {
	writeJSON(w, http.StatusCreated, map[string]any{"message": msg, "id": id})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
