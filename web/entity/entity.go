// Package entity defines the JSON envelopes returned by the API layer.
package entity

import (
	"jobboard/database/model"
)

// APIError is the single-message error body, e.g. {"error": "..."}.
type APIError struct {
	Error string `json:"error"`
}

// FieldErrors carries field-keyed validation messages.
type FieldErrors struct {
	Errors map[string]string `json:"errors"`
}

// AuthResponse is returned by login: the opaque token plus the profile.
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// RegisterResponse inlines the created profile next to the issued token.
type RegisterResponse struct {
	*model.User
	Token string `json:"token"`
}

// MessageResponse is a plain informational body, e.g. logout.
type MessageResponse struct {
	Message string `json:"message"`
}
