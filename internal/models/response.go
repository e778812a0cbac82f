package models

// Response is the envelope every API response is wrapped in.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   int    `json:"count,omitempty"`
}
