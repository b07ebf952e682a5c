// Package flow turns a server-supplied step list into a navigable booking
// flow: it normalizes the graph, resolves the visible branch, gates and
// performs navigation.
package flow

import (
	"errors"
	"fmt"
)

// Error codes raised by the flow engine.
const (
	CodeFlowConfiguration = "flow_configuration"
	CodeValidation        = "validation"
)

// Error is a flow engine failure.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewConfigurationError reports a flow that cannot be shown at all.
func NewConfigurationError(msg string) error {
	return &Error{Code: CodeFlowConfiguration, Message: msg}
}

// NewValidationError reports a step that may not be left yet.
func NewValidationError(msg string) error {
	return &Error{Code: CodeValidation, Message: msg}
}

// IsCode reports whether err is a flow Error with the given code.
func IsCode(err error, code string) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Code == code
}
