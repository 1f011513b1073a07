package api

import (
	"encoding/json"
	"net/http"
)

// rpcResponse is the uniform envelope for every RPC endpoint. Callers only
// need to check success; error_message is empty on the happy path.
type rpcResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// respondJSON writes a JSON response with the given status code and data.
// If data is nil, only the status code and Content-Type header are written.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondOK writes a 200 success envelope.
func respondOK(w http.ResponseWriter) {
	respondJSON(w, http.StatusOK, rpcResponse{Success: true})
}

// respondError writes a failure envelope with the given status code and message.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, rpcResponse{Success: false, ErrorMessage: message})
}
