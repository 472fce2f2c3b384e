package orrery

import "errors"

var (
	// ErrInvalidConfiguration is returned (wrapped) when orbital elements or bodies are built from unusable values.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrDegenerateQuery is returned when a progress query is made on a path too short to be meaningful.
	ErrDegenerateQuery = errors.New("degenerate query")
)
