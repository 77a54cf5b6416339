package view

import (
	"strings"

	"github.com/rpggio/projectboard/internal/domain/project"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// Filter narrows the project list.
type Filter struct {
	Status string
	Query  string
}

// FilterOptions returns the status filter choices in display order.
func FilterOptions() []string {
	out := []string{StatusAll}
	for _, s := range project.Statuses() {
		out = append(out, string(s))
	}
	return out
}

// FilterLabel returns the display name of a filter choice.
func FilterLabel(status string) string {
	if status == StatusAll || status == "" {
		return "All"
	}
	return project.Status(status).Label()
}

// NextStatus cycles to the filter choice after the current one.
func (f Filter) NextStatus() Filter {
	opts := FilterOptions()
	for i, o := range opts {
		if o == f.Status {
			f.Status = opts[(i+1)%len(opts)]
			return f
		}
	}
	f.Status = opts[1%len(opts)]
	return f
}

// Active reports whether the filter hides anything.
func (f Filter) Active() bool {
	return (f.Status != "" && f.Status != StatusAll) || strings.TrimSpace(f.Query) != ""
}

// Apply returns the projects matching the filter in their original order.
// The query matches name or client name, ignoring case.
func (f Filter) Apply(projects []project.Project) []project.Project {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]project.Project, 0, len(projects))
	for _, p := range projects {
		if f.Status != "" && f.Status != StatusAll && string(p.Status) != f.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.ClientName), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// EmptyMessage is shown when the filtered list is empty.
func EmptyMessage(total int) string {
	if total == 0 {
		return "No projects"
	}
	return "No results"
}

// CanSetStatus reports whether the status action for s is enabled for p.
func CanSetStatus(p project.Project, s project.Status, busy, editing bool) bool {
	return !busy && !editing && p.Status != s
}

// EmptyHint is the subtitle under EmptyMessage.
func EmptyHint(total int) string {
	if total == 0 {
		return "The project list is empty."
	}
	return "Try adjusting filters or search."
}

// StatusActionLabel is the caption of the status action for s.
func StatusActionLabel(s project.Status, busy bool) string {
	if busy {
		return "Updating…"
	}
	return "Set to " + s.Label()
}
