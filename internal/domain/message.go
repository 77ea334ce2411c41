package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser   Role = "user"
	RoleModel  Role = "model"
	RoleSystem Role = "system"
)

// ChatMessage is one entry in the conversation history. Messages are
// append-only and never mutated after creation.
type ChatMessage struct {
	ID          string    `json:"id"`
	Role        Role      `json:"role"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
	ActionLabel string    `json:"actionLabel,omitempty"`
	ActionLink  string    `json:"actionLink,omitempty"`
}

// NewMessage creates a message with a fresh id and the current time.
func NewMessage(role Role, text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}
