package submission

import "errors"

var (
	// ErrInProgress is returned when Submit is called while an attempt is
	// already running.
	ErrInProgress = errors.New("submission: attempt already in progress")
	// ErrNoRenderer indicates the controller was built without a renderer.
	ErrNoRenderer = errors.New("submission: renderer is not configured")
)
