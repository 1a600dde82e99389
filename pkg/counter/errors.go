package counter

import "errors"

// ErrNotConfigured indicates no database is available.
var ErrNotConfigured = errors.New("counter: database is not configured")
