package state

import "github.com/rpggio/projectboard/internal/domain/project"

// Action is a state transition. The set of variants is closed; Reduce handles
// each one explicitly.
type Action interface {
	isAction()
}

// FetchStarted begins a first load (Refreshing false) or a refresh.
type FetchStarted struct {
	Refreshing bool
}

// FetchSucceeded replaces the whole collection.
type FetchSucceeded struct {
	Projects []project.Project
}

// FetchFailed records a load error.
type FetchFailed struct {
	Message string
}

// StatusOptimistic sets a tentative status and marks ID in flight.
type StatusOptimistic struct {
	ID     string
	Status project.Status
}

// FieldsOptimistic merges a tentative patch and marks ID in flight.
type FieldsOptimistic struct {
	ID    string
	Patch project.Patch
}

// MutationConfirmed replaces a record with the authoritative value.
type MutationConfirmed struct {
	Project project.Project
}

// MutationRolledBack restores the collection captured before the mutation.
type MutationRolledBack struct {
	Prev []project.Project
}

// MutationDone clears the in-flight marker.
type MutationDone struct{}

func (FetchStarted) isAction()       {}
func (FetchSucceeded) isAction()     {}
func (FetchFailed) isAction()        {}
func (StatusOptimistic) isAction()   {}
func (FieldsOptimistic) isAction()   {}
func (MutationConfirmed) isAction()  {}
func (MutationRolledBack) isAction() {}
func (MutationDone) isAction()       {}

func actionName(a Action) string {
	switch a.(type) {
	case FetchStarted:
		return "fetch_started"
	case FetchSucceeded:
		return "fetch_succeeded"
	case FetchFailed:
		return "fetch_failed"
	case StatusOptimistic:
		return "status_optimistic"
	case FieldsOptimistic:
		return "fields_optimistic"
	case MutationConfirmed:
		return "mutation_confirmed"
	case MutationRolledBack:
		return "mutation_rolled_back"
	case MutationDone:
		return "mutation_done"
	default:
		return "unknown"
	}
}
