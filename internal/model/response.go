package model

import "time"

// Metadata for the response
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// ErrorDetails pinpoints a single invalid field.
type ErrorDetails struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details []ErrorDetails `json:"details,omitempty"`
}

// APIResponse is the uniform JSON envelope for every endpoint.
type APIResponse[T any] struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message,omitempty"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
	Data     T         `json:"data,omitempty"`
}
