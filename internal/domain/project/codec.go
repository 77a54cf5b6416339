package project

import (
	"encoding/json"
	"fmt"
)

// Serialized key names. Matching is exact.
const (
	keyID          = "id"
	keyName        = "name"
	keyClientName  = "clientName"
	keyStatus      = "status"
	keyStartDate   = "startDate"
	keyEndDate     = "endDate"
	keyDescription = "description"
)

// Decode parses a serialized project collection, rejecting anything that is
// not an array of well-formed projects.
func Decode(data []byte) ([]Project, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, fmt.Errorf("%w: expected array", ErrInvalidPayload)
	}

	projects := make([]Project, 0, len(raw))
	for i, elem := range raw {
		p, ok := decodeProject(elem)
		if !ok {
			return nil, fmt.Errorf("%w: malformed project at index %d", ErrInvalidPayload, i)
		}
		projects = append(projects, p)
	}

	return projects, nil
}

func decodeProject(elem json.RawMessage) (Project, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil || fields == nil {
		return Project{}, false
	}

	var p Project
	var status string
	for key, dst := range map[string]*string{
		keyID:         &p.ID,
		keyName:       &p.Name,
		keyClientName: &p.ClientName,
		keyStatus:     &status,
		keyStartDate:  &p.StartDate,
	} {
		if !requiredString(fields, key, dst) {
			return Project{}, false
		}
	}
	p.Status = Status(status)
	if !p.Status.Valid() {
		return Project{}, false
	}
	if !optionalString(fields, keyEndDate, &p.EndDate) || !optionalString(fields, keyDescription, &p.Description) {
		return Project{}, false
	}
	return p, true
}

func requiredString(fields map[string]json.RawMessage, key string, dst *string) bool {
	v, ok := fields[key]
	if !ok {
		return false
	}
	var s *string
	if err := json.Unmarshal(v, &s); err != nil || s == nil {
		return false
	}
	*dst = *s
	return true
}

// optionalString accepts an absent key or null as the empty string.
func optionalString(fields map[string]json.RawMessage, key string, dst *string) bool {
	v, ok := fields[key]
	if !ok {
		return true
	}
	var s *string
	if err := json.Unmarshal(v, &s); err != nil {
		return false
	}
	if s != nil {
		*dst = *s
	}
	return true
}

// Encode serializes a project collection in storage order.
func Encode(projects []Project) ([]byte, error) {
	if projects == nil {
		projects = []Project{}
	}
	data, err := json.Marshal(projects)
	if err != nil {
		return nil, fmt.Errorf("encoding projects: %w", err)
	}
	return data, nil
}
