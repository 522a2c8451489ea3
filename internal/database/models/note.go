package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is a user-owned text memo. UpdatedAt stays nil until the first
// successful edit.
type Note struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	UserID    uuid.UUID  `json:"user_id"`
}
