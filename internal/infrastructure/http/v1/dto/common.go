// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
)

// IDResponse for create operations.
type IDResponse struct {
	ID   string `json:"id"`
	Code string `json:"code,omitempty"`
}

// NewIDResponse creates an ID response with the assigned transaction code.
func NewIDResponse(i id.ID, code string) IDResponse {
	return IDResponse{ID: i.String(), Code: code}
}

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ListResponse wraps list results.
type ListResponse struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
