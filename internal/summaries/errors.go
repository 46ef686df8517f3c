package summaries

import "errors"

// ErrNotFound indicates no summary exists for the requested document.
var ErrNotFound = errors.New("summary not found")
