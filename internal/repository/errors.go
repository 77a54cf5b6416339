package repository

import "errors"

var (
	// ErrNotFound is returned when a requested slot holds no value
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a slot key is empty
	ErrInvalidInput = errors.New("invalid input")
)
