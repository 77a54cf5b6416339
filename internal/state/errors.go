package state

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrMutationInFlight is returned under PolicyReject.
	ErrMutationInFlight = errors.New("a change to this project is already in progress")
)

const fallbackMessage = "Unknown error"

// Message returns the user-visible text for err with its first letter
// capitalized.
func Message(err error) string {
	if err == nil {
		return fallbackMessage
	}
	msg := err.Error()
	if msg == "" {
		return fallbackMessage
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}
