package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/projectboard/internal/domain/project"
	"github.com/rpggio/projectboard/internal/state"
	"github.com/rpggio/projectboard/internal/view"
)

// ErrUnknownTool is returned for a tool name outside the catalog.
var ErrUnknownTool = errors.New("unknown tool")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid IDs"}
	case errors.Is(err, project.ErrInvalidStatus):
		return &APIError{Code: "INVALID_STATUS", Message: "invalid status", RecoveryHint: "Use active, on_hold or completed"}
	case view.IsValidationError(err),
		errors.Is(err, project.ErrNameRequired),
		errors.Is(err, project.ErrClientNameRequired),
		errors.Is(err, project.ErrStartDateRequired):
		return &APIError{Code: "VALIDATION_FAILED", Message: err.Error(), RecoveryHint: "Fix the field and retry"}
	case errors.Is(err, state.ErrMutationInFlight):
		return &APIError{Code: "MUTATION_IN_FLIGHT", Message: err.Error(), RecoveryHint: "Wait for the pending change, then retry"}
	case errors.Is(err, project.ErrSimulatedNetwork):
		return &APIError{Code: "UNAVAILABLE", Message: err.Error(), RecoveryHint: "Retry the call"}
	case errors.Is(err, project.ErrInvalidPayload):
		return &APIError{Code: "INVALID_RESPONSE", Message: err.Error(), RecoveryHint: "Check the storage slot contents"}
	case errors.Is(err, ErrUnknownTool):
		return &APIError{Code: "UNKNOWN_TOOL", Message: err.Error(), RecoveryHint: "Call tools/list"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
