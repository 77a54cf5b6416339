// Package view holds presentation rules shared by the terminal UI and the MCP
// tool surface.
package view

import (
	"errors"
	"regexp"
	"strings"

	"github.com/rpggio/projectboard/internal/domain/project"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var (
	ErrNameRequired       = errors.New("Name is required.")
	ErrClientNameRequired = errors.New("Client name is required.")
	ErrStartDateRequired  = errors.New("Start date is required.")
	ErrStartDateFormat    = errors.New("Start date must be YYYY-MM-DD.")
	ErrEndDateFormat      = errors.New("End date must be YYYY-MM-DD (or empty).")
	ErrEndBeforeStart     = errors.New("End date cannot be earlier than start date.")
)

// Draft is the editable form state of a project.
type Draft struct {
	Name        string
	ClientName  string
	StartDate   string
	EndDate     string
	Description string
}

// DraftFrom fills a draft with the current values of p.
func DraftFrom(p project.Project) Draft {
	return Draft{
		Name:        p.Name,
		ClientName:  p.ClientName,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Description: p.Description,
	}
}

// Validate trims the draft and checks it. On success it returns a patch
// carrying every field; an empty end date or description clears the field.
func (d Draft) Validate() (project.Patch, error) {
	name := strings.TrimSpace(d.Name)
	clientName := strings.TrimSpace(d.ClientName)
	startDate := strings.TrimSpace(d.StartDate)
	endDate := strings.TrimSpace(d.EndDate)
	description := strings.TrimSpace(d.Description)

	switch {
	case name == "":
		return project.Patch{}, ErrNameRequired
	case clientName == "":
		return project.Patch{}, ErrClientNameRequired
	case startDate == "":
		return project.Patch{}, ErrStartDateRequired
	case !datePattern.MatchString(startDate):
		return project.Patch{}, ErrStartDateFormat
	case endDate != "" && !datePattern.MatchString(endDate):
		return project.Patch{}, ErrEndDateFormat
	case endDate != "" && endDate < startDate:
		return project.Patch{}, ErrEndBeforeStart
	}

	return project.Patch{
		Name:        &name,
		ClientName:  &clientName,
		StartDate:   &startDate,
		EndDate:     &endDate,
		Description: &description,
	}, nil
}

// IsValidationError reports whether err came from Draft.Validate.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrNameRequired, ErrClientNameRequired, ErrStartDateRequired,
		ErrStartDateFormat, ErrEndDateFormat, ErrEndBeforeStart,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
