package registry

import "errors"

var (
	// ErrEmptyDocument is returned when Load receives no content.
	ErrEmptyDocument = errors.New("registry: document is empty")
	// ErrDuplicate is wrapped when a field, country or percentage repeats.
	ErrDuplicate = errors.New("registry: duplicate entry")
)
