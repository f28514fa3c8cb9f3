package generator

import "errors"

var (
	// ErrModelNotFound is returned when a relation targets a table that was
	// never registered. A dependent row cannot be produced with a dangling
	// reference, so callers must treat this as fatal for the current row.
	ErrModelNotFound = errors.New("table model not registered")

	// ErrDepthExceeded is returned when recursive relation resolution crosses
	// the registry's depth limit, which indicates mutually referencing tables
	// whose pools never stabilize.
	ErrDepthExceeded = errors.New("relation resolution depth exceeded")
)
