package utils

import (
	"encoding/json"
	"net/http"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteRejection writes a business-rule rejection with its stable reason
// code in data.code so clients can branch on it.
func WriteRejection(w http.ResponseWriter, code, message string) {
	WriteJSON(w, http.StatusUnprocessableEntity, APIResponse{
		Success: false,
		Message: message,
		Data:    map[string]interface{}{"code": code},
	})
}

// GetStringValue returns the value of a nullable string pointer or empty string if nil
func GetStringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
