package project

// Status represents the lifecycle state of a project
type Status string

const (
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
)

var statusLabels = map[Status]string{
	StatusActive:    "Active",
	StatusOnHold:    "On hold",
	StatusCompleted: "Completed",
}

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{StatusActive, StatusOnHold, StatusCompleted}
}

// ParseStatus converts a raw value into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Valid reports whether s belongs to the fixed status enumeration.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human readable name of the status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Project is a tracked piece of client work.
// Optional fields use the empty string for absence.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ClientName  string `json:"clientName"`
	Status      Status `json:"status"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// Patch is a partial update of the editable fields of a project.
// A nil field is left untouched. For EndDate and Description a pointer to
// the empty string clears the field.
type Patch struct {
	Name        *string `json:"name,omitempty"`
	ClientName  *string `json:"clientName,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply merges the patch onto p and returns the merged copy.
func (pt Patch) Apply(p Project) Project {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.ClientName != nil {
		p.ClientName = *pt.ClientName
	}
	if pt.StartDate != nil {
		p.StartDate = *pt.StartDate
	}
	if pt.EndDate != nil {
		p.EndDate = *pt.EndDate
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	return p
}

// Clone returns a copy of the slice so callers never share backing arrays.
func Clone(projects []Project) []Project {
	if projects == nil {
		return nil
	}
	out := make([]Project, len(projects))
	copy(out, projects)
	return out
}
