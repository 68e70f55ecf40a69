package agent

import "errors"

var (
	ErrBackendUnavailable = errors.New("ai backend unavailable")
	ErrEmptyGeneration    = errors.New("ai backend returned empty text")
	ErrDimensionMismatch  = errors.New("embedding dimensions differ")
	ErrZeroVector         = errors.New("embedding has zero magnitude")
	ErrInvalidSimilarity  = errors.New("similarity is not a finite number")
)
