package core

import "fmt"

type Unit struct{}

type CommandError struct {
	Unwrapped  error
	StatusCode int
	Reason     *string
}

type CommandErrorOption func(*CommandError)

func WithReason(reason string) CommandErrorOption {
	return func(e *CommandError) {
		e.Reason = &reason
	}
}

func NewCommandError(statusCode int, err error, opts ...CommandErrorOption) CommandError {
	e := CommandError{
		StatusCode: statusCode,
		Unwrapped:  err,
	}

	for _, opt := range opts {
		opt(&e)
	}

	return e
}

func (e CommandError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("%s: %v", *e.Reason, e.Unwrapped)
	}

	return fmt.Sprintf("%v", e.Unwrapped)
}

func (e CommandError) Unwrap() error {
	return e.Unwrapped
}
