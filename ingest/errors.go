package ingest

import "errors"

// ErrMalformedSnapshot marks a frame that cannot be turned into a board:
// a required field is missing, has the wrong shape, or places a unit
// outside the arena.
var ErrMalformedSnapshot = errors.New("malformed snapshot")
