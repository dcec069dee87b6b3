package events

import (
	"time"

	"github.com/spec-kit/marketplace-auth/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered   EventType = "user_registered"
	EventUserLoggedIn     EventType = "user_logged_in"
	EventProfileCompleted EventType = "profile_completed"
)

// Event represents a domain event emitted by services. Payloads never carry
// password material, plaintext or hashed.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// ProfileCompletedPayload payload.
type ProfileCompletedPayload struct {
	Role domain.Role `json:"role"`
}
