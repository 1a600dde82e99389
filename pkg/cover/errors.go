package cover

import (
	"errors"
	"fmt"
)

// ErrResourceRead matches every *ReadError through errors.Is.
var ErrResourceRead = errors.New("cover: resource read failed")

// ReadError reports an attachment whose bytes could not be read.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cover: read %q: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func (e *ReadError) Is(target error) bool {
	return target == ErrResourceRead
}
