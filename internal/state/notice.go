package state

import (
	"time"

	"github.com/google/uuid"
)

// Command names a mutating controller command.
type Command string

const (
	CommandStatus Command = "status"
	CommandFields Command = "fields"
)

// Title is the heading shown for a failed command.
func (c Command) Title() string {
	if c == CommandFields {
		return "Save failed"
	}
	return "Update failed"
}

// Notice is a transient alert raised when a mutation is rolled back. It is
// delivered separately from snapshots and never stored in one.
type Notice struct {
	ID        uuid.UUID
	Command   Command
	ProjectID string
	Title     string
	Message   string
	At        time.Time
}
