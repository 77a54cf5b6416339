package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/rpggio/projectboard/internal/domain/project"
	"github.com/rpggio/projectboard/internal/state"
	"github.com/rpggio/projectboard/internal/view"
)

// Controller defines the state operations needed by MCP.
type Controller interface {
	FetchAll(ctx context.Context, refreshing bool) error
	UpdateStatus(ctx context.Context, id string, status project.Status) error
	UpdateFields(ctx context.Context, id string, patch project.Patch) error
	GetByID(id string) (project.Project, bool)
	Snapshot() state.Snapshot
}

// Handler dispatches MCP tool calls.
type Handler struct {
	controller Controller
	loaded     atomic.Bool
}

// NewHandler creates a new MCP handler.
func NewHandler(controller Controller) *Handler {
	return &Handler{controller: controller}
}

// Handle dispatches a tool call to the controller.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "list_projects":
		var req ListProjectsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		filter, err := toFilter(req)
		if err != nil {
			return nil, mapError(err)
		}
		if err := h.ensureLoaded(ctx); err != nil {
			return nil, mapError(err)
		}
		return h.list(filter), nil
	case "get_project":
		var req GetProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.ensureLoaded(ctx); err != nil {
			return nil, mapError(err)
		}
		return h.get(req.ID)
	case "refresh_projects":
		if err := h.controller.FetchAll(ctx, true); err != nil {
			return nil, mapError(err)
		}
		h.loaded.Store(true)
		return h.list(view.Filter{Status: view.StatusAll}), nil
	case "update_project_status":
		var req UpdateProjectStatusParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		status, err := project.ParseStatus(req.Status)
		if err != nil {
			return nil, mapError(err)
		}
		if err := h.ensureLoaded(ctx); err != nil {
			return nil, mapError(err)
		}
		if current, ok := h.controller.GetByID(req.ID); ok && current.Status == status {
			return nil, &APIError{
				Code:         "VALIDATION_FAILED",
				Message:      fmt.Sprintf("project is already %s", status.Label()),
				RecoveryHint: "Pick a different status",
			}
		}
		if err := h.controller.UpdateStatus(ctx, req.ID, status); err != nil {
			return nil, mapError(err)
		}
		return h.get(req.ID)
	case "update_project":
		var req UpdateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.ensureLoaded(ctx); err != nil {
			return nil, mapError(err)
		}
		current, ok := h.controller.GetByID(req.ID)
		if !ok {
			return nil, mapError(project.ErrProjectNotFound)
		}
		patch, err := overlay(view.DraftFrom(current), req).Validate()
		if err != nil {
			return nil, mapError(err)
		}
		if err := h.controller.UpdateFields(ctx, req.ID, patch); err != nil {
			return nil, mapError(err)
		}
		return h.get(req.ID)
	default:
		return nil, mapError(fmt.Errorf("%w: %s", ErrUnknownTool, method))
	}
}

// ensureLoaded performs the first load once. A failed load is retried on the
// next call.
func (h *Handler) ensureLoaded(ctx context.Context) error {
	if h.loaded.Load() {
		return nil
	}
	if err := h.controller.FetchAll(ctx, false); err != nil {
		return err
	}
	h.loaded.Store(true)
	return nil
}

func (h *Handler) list(filter view.Filter) ListProjectsResponse {
	snap := h.controller.Snapshot()
	matched := filter.Apply(snap.Projects)

	resp := ListProjectsResponse{
		Projects: make([]ProjectResponse, 0, len(matched)),
		Total:    len(snap.Projects),
		Filter:   view.FilterLabel(filter.Status),
	}
	for _, p := range matched {
		resp.Projects = append(resp.Projects, toProjectResponse(p, snap.Updating(p.ID)))
	}
	if len(matched) == 0 {
		resp.Message = view.EmptyMessage(resp.Total)
		resp.Hint = view.EmptyHint(resp.Total)
	}
	return resp
}

func (h *Handler) get(id string) (ProjectResponse, error) {
	snap := h.controller.Snapshot()
	p, ok := snap.Find(id)
	if !ok {
		return ProjectResponse{}, mapError(project.ErrProjectNotFound)
	}
	return toProjectResponse(p, snap.Updating(id)), nil
}

func toFilter(req ListProjectsParams) (view.Filter, error) {
	filter := view.Filter{Status: view.StatusAll, Query: req.Query}
	if req.Status != "" && req.Status != view.StatusAll {
		status, err := project.ParseStatus(req.Status)
		if err != nil {
			return view.Filter{}, err
		}
		filter.Status = string(status)
	}
	return filter, nil
}

func overlay(d view.Draft, req UpdateProjectParams) view.Draft {
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.ClientName != nil {
		d.ClientName = *req.ClientName
	}
	if req.StartDate != nil {
		d.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		d.EndDate = *req.EndDate
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	return d
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return &APIError{Code: "INVALID_PARAMS", Message: err.Error(), RecoveryHint: "Check the tool input schema"}
	}
	return nil
}
