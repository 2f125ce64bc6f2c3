package types

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEntry is one human-readable line in the session activity log.
type ActivityEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// SessionState is the whole of a session's mutable state. The session domain
// owns it exclusively; flows replace fields wholesale (last write wins),
// never mutate them in place.
type SessionState struct {
	ID           uuid.UUID         `json:"id"`
	Location     *LocationRecord   `json:"location,omitempty"`
	Selection    GenerationRequest `json:"selection"`
	CurrentImage *GeneratedImage   `json:"current_image,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// NewSessionState starts a session with default selections and no location.
func NewSessionState(id uuid.UUID) *SessionState {
	now := time.Now()
	return &SessionState{
		ID:        id,
		Selection: DefaultGenerationRequest(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
