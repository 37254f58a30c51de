package route

import (
	"errors"
	"fmt"
)

var (
	// ErrMixedSources marks a route group holding waypoints from more than one source.
	ErrMixedSources = errors.New("route group mixes sources")
	// ErrEmptySegment marks a segment without waypoints.
	ErrEmptySegment = errors.New("segment has no waypoints")
)

// StructureError reports structurally invalid stitcher input.
type StructureError struct {
	SourceID string
	Segment  string
	Err      error
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("route %q segment %q: %v", e.SourceID, e.Segment, e.Err)
}

func (e *StructureError) Unwrap() error {
	return e.Err
}
