package project

import "strings"

// ValidateRequired checks the fields every stored project must carry.
// Date format and ordering are left to the presentation layer.
func ValidateRequired(p Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(p.ClientName) == "" {
		return ErrClientNameRequired
	}
	if strings.TrimSpace(p.StartDate) == "" {
		return ErrStartDateRequired
	}
	return nil
}
