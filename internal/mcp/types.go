package mcp

import (
	"github.com/rpggio/projectboard/internal/domain/project"
)

type ListProjectsParams struct {
	Status string `json:"status,omitempty"`
	Query  string `json:"query,omitempty"`
}

type GetProjectParams struct {
	ID string `json:"id"`
}

type UpdateProjectStatusParams struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UpdateProjectParams overlays the given fields on the current values.
// An empty end_date or description clears the field.
type UpdateProjectParams struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	ClientName  *string `json:"client_name,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ProjectResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ClientName  string `json:"client_name"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
	Updating    bool   `json:"updating,omitempty"`
}

type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int               `json:"total"`
	Filter   string            `json:"filter"`
	Message  string            `json:"message,omitempty"`
	Hint     string            `json:"hint,omitempty"`
}

func toProjectResponse(p project.Project, updating bool) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		ClientName:  p.ClientName,
		Status:      string(p.Status),
		StatusLabel: p.Status.Label(),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Description: p.Description,
		Updating:    updating,
	}
}
