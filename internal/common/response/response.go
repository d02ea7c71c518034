package response

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIResponse is the envelope every handler writes. Status is "success"
// or "error"; exactly one of Data and Message is set.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// WriteResponse wraps payload in an APIResponse keyed off statusCode.
// 2xx carries the payload as data; anything else renders it as the
// error message.
func WriteResponse(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := APIResponse{Status: "error", Message: messageOf(payload)}
	if statusCode >= 200 && statusCode < 300 {
		resp = APIResponse{Status: "success", Data: payload}
	}

	_ = json.NewEncoder(w).Encode(resp)
}

func messageOf(payload interface{}) string {
	switch v := payload.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
