package validation

import "errors"

// ErrInvalid matches every *Error through errors.Is.
var ErrInvalid = errors.New("validation: form is not submittable")
