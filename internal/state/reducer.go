package state

import (
	"fmt"

	"github.com/rpggio/projectboard/internal/domain/project"
)

// Reduce returns the snapshot that results from applying a to s. s is not
// modified; the result shares no slices with s or a.
func Reduce(s Snapshot, a Action) Snapshot {
	next := s.clone()

	switch a := a.(type) {
	case FetchStarted:
		next.Error = nil
		next.Loading = !a.Refreshing
		next.Refreshing = a.Refreshing
	case FetchSucceeded:
		next.Loading = false
		next.Refreshing = false
		next.Projects = project.Clone(a.Projects)
	case FetchFailed:
		next.Loading = false
		next.Refreshing = false
		msg := a.Message
		next.Error = &msg
	case StatusOptimistic:
		id := a.ID
		next.UpdatingID = &id
		next.Projects = replace(next.Projects, a.ID, func(p project.Project) project.Project {
			p.Status = a.Status
			return p
		})
	case FieldsOptimistic:
		id := a.ID
		next.UpdatingID = &id
		next.Projects = replace(next.Projects, a.ID, a.Patch.Apply)
	case MutationConfirmed:
		confirmed := a.Project
		next.Projects = replace(next.Projects, confirmed.ID, func(project.Project) project.Project {
			return confirmed
		})
	case MutationRolledBack:
		next.UpdatingID = nil
		next.Projects = project.Clone(a.Prev)
	case MutationDone:
		next.UpdatingID = nil
	default:
		panic(fmt.Sprintf("state: unhandled action %T", a))
	}

	return next
}

// replace swaps every record with id for fn(record). projects is already a copy.
func replace(projects []project.Project, id string, fn func(project.Project) project.Project) []project.Project {
	for i := range projects {
		if projects[i].ID == id {
			projects[i] = fn(projects[i])
		}
	}
	return projects
}
