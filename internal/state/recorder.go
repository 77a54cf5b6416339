package state

import "time"

// Recorder observes command outcomes.
type Recorder interface {
	FetchCompleted(refreshing bool, err error, elapsed time.Duration)
	MutationCompleted(cmd Command, err error, elapsed time.Duration)
	RolledBack(cmd Command)
}

type nopRecorder struct{}

func (nopRecorder) FetchCompleted(bool, error, time.Duration)       {}
func (nopRecorder) MutationCompleted(Command, error, time.Duration) {}
func (nopRecorder) RolledBack(Command)                              {}
