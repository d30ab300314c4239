// Package response writes the JSON envelope shared by every endpoint: a boolean
// "success" flag next to the payload fields, or a "message" on failure.
package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes body with the given status. body should carry its own success field.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Error writes {"success":false,"message":message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Success: false, Message: message})
}

type messageBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OK writes {"success":true,"message":message} with status 200.
func OK(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, messageBody{Success: true, Message: message})
}
