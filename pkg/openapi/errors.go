package openapi

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyDocument indicates no document bytes were supplied.
	ErrEmptyDocument = errors.New("openapi: document is empty")
	// ErrMissingOperation indicates the document lacks a required operation.
	ErrMissingOperation = errors.New("openapi: required operation missing")
	// ErrPayloadRejected matches every *PayloadError.
	ErrPayloadRejected = errors.New("openapi: payload rejected by contract")
)

// PayloadError lists why a payload does not satisfy the request schema.
type PayloadError struct {
	Issues []string
	Err    error
}

func (e *PayloadError) Error() string {
	return "openapi: payload rejected: " + strings.Join(e.Issues, "; ")
}

func (e *PayloadError) Unwrap() error { return e.Err }

func (e *PayloadError) Is(target error) bool { return target == ErrPayloadRejected }
