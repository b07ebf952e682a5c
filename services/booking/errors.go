package booking

import (
	"errors"
	"fmt"

	"bookingflow/services/flow"
)

// Error codes carried by *Error. Validation and flow-configuration codes are
// shared with the flow package.
const (
	CodeConfigFetch        = "config_fetch"
	CodeAvailabilityFetch  = "availability_fetch"
	CodeTemporalGuard      = "temporal_guard"
	CodeSubmission         = "submission"
	CodeCancellationWindow = "cancellation_window"
	CodeSessionNotFound    = "session_not_found"
	CodeBookingNotFound    = "booking_not_found"
	CodeBookingFetch       = "booking_fetch"
	CodeValidation         = flow.CodeValidation
	CodeFlowConfiguration  = flow.CodeFlowConfiguration
)

// Error is a booking failure with a user-facing message.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code, msg string, err error) error {
	return &Error{Code: code, Message: msg, Err: err}
}

func NewTemporalGuardError(msg string) error {
	return newError(CodeTemporalGuard, msg, nil)
}

func NewSubmissionError(msg string, err error) error {
	return newError(CodeSubmission, msg, err)
}

func NewCancellationWindowError(msg string) error {
	return newError(CodeCancellationWindow, msg, nil)
}

// ErrorCode extracts the code of a booking or flow error, or "" for any
// other error.
func ErrorCode(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	var fe *flow.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// ErrorMessage returns the user-facing message of a booking or flow error.
func ErrorMessage(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Message
	}
	var fe *flow.Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}
