package state

import "github.com/rpggio/projectboard/internal/domain/project"

// Snapshot is the full controller state at one instant. Values handed out by
// the controller are private copies.
type Snapshot struct {
	Projects   []project.Project
	Loading    bool
	Refreshing bool
	// Error is the last load error, nil when the last fetch succeeded or none ran.
	Error *string
	// UpdatingID is the id of the most recently issued mutation still in flight.
	UpdatingID *string
}

// Find returns the project with id.
func (s Snapshot) Find(id string) (project.Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return project.Project{}, false
}

// Updating reports whether id is the in-flight mutation target.
func (s Snapshot) Updating(id string) bool {
	return s.UpdatingID != nil && *s.UpdatingID == id
}

// ErrorMessage returns the load error or the empty string.
func (s Snapshot) ErrorMessage() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Projects = project.Clone(s.Projects)
	out.Error = copyString(s.Error)
	out.UpdatingID = copyString(s.UpdatingID)
	return out
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
