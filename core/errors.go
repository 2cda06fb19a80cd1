package core

import (
	"errors"
	"fmt"
)

var (
	// ErrBriefNotFound is returned when no brief has been generated yet.
	ErrBriefNotFound = errors.New("no brief found")
	// ErrUnknownBrand is returned for brand keys outside the registry.
	ErrUnknownBrand = errors.New("unknown brand")
)

// GenerationError reports a failed brief generation request.
type GenerationError struct {
	Brand  string
	Status int
	Detail string
}

func (e *GenerationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("generating brief for %s: status %d", e.Brand, e.Status)
	}
	return fmt.Sprintf("generating brief for %s: %s", e.Brand, e.Detail)
}
