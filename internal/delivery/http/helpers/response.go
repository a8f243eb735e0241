package helpers

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body of every error response.
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

// DeleteResponse is the body of a DELETE response.
// swagger:model DeleteResponse
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and encodes data.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteMessage writes {"message": message} with statusCode.
func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, MessageResponse{Message: message})
}

// WriteDeleted writes {"deleted": deleted} with 200.
func WriteDeleted(w http.ResponseWriter, deleted bool) {
	WriteJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
}
