package domain

import "time"

// ConflictKind distinguishes what a proposed window collided with.
type ConflictKind string

const (
	ConflictBlock    ConflictKind = "block"
	ConflictCalendar ConflictKind = "calendar"
)

// Conflict describes one existing block or calendar event whose range
// intersects a proposed window. Conflicts are decision data, not errors.
type Conflict struct {
	Kind  ConflictKind `json:"kind"`
	ID    string       `json:"id"`
	Title string       `json:"title,omitempty"`
	Start time.Time    `json:"start"`
	End   time.Time    `json:"end"`
}
