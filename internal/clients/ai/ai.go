package ai

import (
	"context"
	"errors"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ErrNotConfigured is returned when no provider API key is present; the HTTP
// surface maps it to 503.
var ErrNotConfigured = errors.New("ai provider not configured")

// Message is one conversation turn in the stored role vocabulary
// ("user" / "model"); providers translate to their own labels.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is the external text-generation service. Chat sends the full
// ordered history (last element is the pending user turn) and returns the
// model's reply text.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Name() string
}
