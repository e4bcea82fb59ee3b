package router

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedArguments is matched by errors returned when a directive's
	// arguments are not a JSON object.
	ErrMalformedArguments = errors.New("malformed function arguments")
	// ErrUnknownFunction is matched by errors returned when a directive names
	// a function with no registered handler.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrNoDirective is returned under PassthroughReject for replies without a
	// function call.
	ErrNoDirective = errors.New("message carries no function call")
)

// UnknownFunctionError reports a directive naming an unregistered function.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function: %q", e.Name)
}

func (e *UnknownFunctionError) Is(target error) bool { return target == ErrUnknownFunction }

// MalformedArgumentsError reports arguments that could not be decoded.
type MalformedArgumentsError struct {
	Function  string
	Arguments string
	Err       error
}

func (e *MalformedArgumentsError) Error() string {
	return fmt.Sprintf("malformed arguments for function %q: %v", e.Function, e.Err)
}

func (e *MalformedArgumentsError) Unwrap() error { return e.Err }

func (e *MalformedArgumentsError) Is(target error) bool { return target == ErrMalformedArguments }

// ArgumentError reports a missing or mistyped field inside decoded arguments.
type ArgumentError struct {
	Key    string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %q: %s", e.Key, e.Reason)
}
