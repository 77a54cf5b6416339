package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("not found")
	// ErrInvalidStatus indicates a status outside the fixed enumeration.
	ErrInvalidStatus = errors.New("invalid project status")
	// ErrNameRequired indicates an empty project name after merge.
	ErrNameRequired = errors.New("name is required")
	// ErrClientNameRequired indicates an empty client name after merge.
	ErrClientNameRequired = errors.New("client name is required")
	// ErrStartDateRequired indicates an empty start date after merge.
	ErrStartDateRequired = errors.New("start date is required")
	// ErrInvalidPayload indicates the stored collection could not be read.
	ErrInvalidPayload = errors.New("invalid response")
	// ErrSimulatedNetwork is returned when failure simulation is enabled.
	ErrSimulatedNetwork = errors.New("network error (simulated)")
)
