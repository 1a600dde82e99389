package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrDeclined is returned when the user does not confirm the submission.
	ErrDeclined = errors.New("prompt: submission declined")
	// ErrRoundsExhausted is returned when the form still does not validate
	// after the allowed number of correction rounds.
	ErrRoundsExhausted = errors.New("prompt: too many correction rounds")
)
