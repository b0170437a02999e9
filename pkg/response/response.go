package response

import (
	"encoding/json"
	"net/http"
)

// Envelope matches what the dashboard frontend consumes: success/message/
// statusCode on every payload, data only on success.

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func Success(w http.ResponseWriter, status int, data any, message string) {
	JSON(w, status, map[string]any{
		"success":    true,
		"message":    message,
		"data":       data,
		"statusCode": status,
	})
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{
		"success":    false,
		"message":    message,
		"statusCode": status,
	})
}
