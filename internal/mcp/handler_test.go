package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rpggio/projectboard/internal/domain/project"
	"github.com/rpggio/projectboard/internal/memory"
	"github.com/rpggio/projectboard/internal/state"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts project.Options) (*Handler, *state.Controller) {
	t.Helper()
	svc := project.NewService(memory.NewStore(), opts, nil)
	controller := state.NewController(svc, state.Options{}, nil)
	return NewHandler(controller), controller
}

func call(t *testing.T, h *Handler, method string, params any) (any, error) {
	t.Helper()
	var raw json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		require.NoError(t, err)
		raw = data
	}
	return h.Handle(context.Background(), method, raw)
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, code, apiErr.Code)
}

func TestHandler_ListProjects(t *testing.T) {
	h, _ := newTestHandler(t, project.Options{})

	result, err := call(t, h, "list_projects", nil)
	require.NoError(t, err)
	list := result.(ListProjectsResponse)
	require.Len(t, list.Projects, len(project.Seed()))
	require.Equal(t, "All", list.Filter)
	require.Equal(t, "p1", list.Projects[0].ID)
	require.Equal(t, "Active", list.Projects[0].StatusLabel)

	result, err = call(t, h, "list_projects", map[string]any{"status": "on_hold"})
	require.NoError(t, err)
	list = result.(ListProjectsResponse)
	require.Len(t, list.Projects, 1)
	require.Equal(t, "p2", list.Projects[0].ID)

	result, err = call(t, h, "list_projects", map[string]any{"query": "nothing-matches"})
	require.NoError(t, err)
	list = result.(ListProjectsResponse)
	require.Empty(t, list.Projects)
	require.Equal(t, "No results", list.Message)

	_, err = call(t, h, "list_projects", map[string]any{"status": "archived"})
	requireCode(t, err, "INVALID_STATUS")
}

func TestHandler_GetProject(t *testing.T) {
	h, _ := newTestHandler(t, project.Options{})

	result, err := call(t, h, "get_project", map[string]any{"id": "p3"})
	require.NoError(t, err)
	require.Equal(t, "Inventory Sync", result.(ProjectResponse).Name)

	_, err = call(t, h, "get_project", map[string]any{"id": "missing"})
	requireCode(t, err, "PROJECT_NOT_FOUND")
}

func TestHandler_UpdateProjectStatus(t *testing.T) {
	h, controller := newTestHandler(t, project.Options{})

	result, err := call(t, h, "update_project_status", map[string]any{"id": "p1", "status": "completed"})
	require.NoError(t, err)
	resp := result.(ProjectResponse)
	require.Equal(t, "completed", resp.Status)
	require.False(t, resp.Updating)

	got, ok := controller.GetByID("p1")
	require.True(t, ok)
	require.Equal(t, project.StatusCompleted, got.Status)

	_, err = call(t, h, "update_project_status", map[string]any{"id": "p1", "status": "completed"})
	requireCode(t, err, "VALIDATION_FAILED")

	_, err = call(t, h, "update_project_status", map[string]any{"id": "p1", "status": "archived"})
	requireCode(t, err, "INVALID_STATUS")

	_, err = call(t, h, "update_project_status", map[string]any{"id": "missing", "status": "active"})
	requireCode(t, err, "PROJECT_NOT_FOUND")
}

func TestHandler_UpdateProject(t *testing.T) {
	h, controller := newTestHandler(t, project.Options{})

	result, err := call(t, h, "update_project", map[string]any{
		"id":       "p1",
		"name":     "  Website Relaunch ",
		"end_date": "",
	})
	require.NoError(t, err)
	resp := result.(ProjectResponse)
	require.Equal(t, "Website Relaunch", resp.Name)
	require.Empty(t, resp.EndDate)
	require.Equal(t, project.Seed()[0].ClientName, resp.ClientName)

	got, _ := controller.GetByID("p1")
	require.Equal(t, "Website Relaunch", got.Name)
	require.Empty(t, got.EndDate)
}

func TestHandler_UpdateProjectValidation(t *testing.T) {
	h, controller := newTestHandler(t, project.Options{})
	_, err := call(t, h, "list_projects", nil)
	require.NoError(t, err)
	require.Len(t, controller.Snapshot().Projects, len(project.Seed()))

	tests := []struct {
		name    string
		params  map[string]any
		message string
	}{
		{"empty name", map[string]any{"id": "p1", "name": ""}, "Name is required."},
		{"bad start", map[string]any{"id": "p1", "start_date": "June 1"}, "Start date must be YYYY-MM-DD."},
		{"end before start", map[string]any{"id": "p1", "start_date": "2020-06-01", "end_date": "2020-01-01"}, "End date cannot be earlier than start date."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := controller.Snapshot().Projects
			_, err := call(t, h, "update_project", tt.params)
			requireCode(t, err, "VALIDATION_FAILED")
			require.Equal(t, tt.message, MapError(err).Message)
			require.Equal(t, before, controller.Snapshot().Projects)
		})
	}

	_, err = call(t, h, "update_project", map[string]any{"id": "missing", "name": "x"})
	requireCode(t, err, "PROJECT_NOT_FOUND")
}

func TestHandler_SimulatedFailure(t *testing.T) {
	h, _ := newTestHandler(t, project.Options{SimulateError: true})

	_, err := call(t, h, "list_projects", nil)
	requireCode(t, err, "UNAVAILABLE")
}

func TestHandler_RefreshProjects(t *testing.T) {
	h, _ := newTestHandler(t, project.Options{})

	result, err := call(t, h, "refresh_projects", nil)
	require.NoError(t, err)
	require.Len(t, result.(ListProjectsResponse).Projects, len(project.Seed()))
}

func TestHandler_InvalidParams(t *testing.T) {
	h, _ := newTestHandler(t, project.Options{})

	_, err := h.Handle(context.Background(), "get_project", json.RawMessage(`{"id":5}`))
	requireCode(t, err, "INVALID_PARAMS")
}

func TestHandler_UnknownTool(t *testing.T) {
	h, _ := newTestHandler(t, project.Options{})

	_, err := call(t, h, "delete_project", nil)
	requireCode(t, err, "UNKNOWN_TOOL")
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(errors.New("other")))
	require.Equal(t, "MUTATION_IN_FLIGHT", MapError(state.ErrMutationInFlight).Code)
	require.Equal(t, "VALIDATION_FAILED", MapError(project.ErrClientNameRequired).Code)
	require.Equal(t, "INVALID_RESPONSE", MapError(project.ErrInvalidPayload).Code)
}
