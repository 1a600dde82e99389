package rendering

import "errors"

// ErrEmptyTemplate indicates an upload without a body.
var ErrEmptyTemplate = errors.New("rendering: template body is required")
