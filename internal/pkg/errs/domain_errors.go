package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrRemoteFailure     = errors.New("remote failure")
	ErrGeolocation       = errors.New("geolocation failure")
)

// IllegalTransitionError is returned when a role asks for a status change the
// transition table does not allow. Allowed lists the legal targets from From.
type IllegalTransitionError struct {
	From    string
	To      string
	Role    string
	Allowed []string
	Cause   error
}

func NewIllegalTransitionError(from, to, role string, allowed []string) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to, Role: role, Allowed: allowed}
}

func NewIllegalTransitionErrorWithCause(from, to, role string, allowed []string, cause error) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to, Role: role, Allowed: allowed, Cause: cause}
}

func (e *IllegalTransitionError) Error() string {
	allowed := "none"
	if len(e.Allowed) > 0 {
		allowed = strings.Join(e.Allowed, ", ")
	}
	msg := fmt.Sprintf("%s: %s -> %s is not allowed for role %s (allowed: %s)",
		ErrIllegalTransition, e.From, e.To, e.Role, allowed)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// Is matches the cause, so errors.Is reaches it while Unwrap keeps
// returning the sentinel.
func (e *IllegalTransitionError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// ForbiddenError is returned when the actor may not touch the resource at all.
type ForbiddenError struct {
	Action string
	Reason string
}

func NewForbiddenError(action, reason string) *ForbiddenError {
	return &ForbiddenError{Action: action, Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrForbidden, e.Action, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

const defaultRemoteMessage = "Something went wrong. Please try again."

// RemoteFailureError wraps a failed call to persistence or a remote API.
// Message is the server-provided text, if any.
type RemoteFailureError struct {
	Operation string
	Message   string
	Cause     error
}

func NewRemoteFailureError(operation string, cause error) *RemoteFailureError {
	return &RemoteFailureError{Operation: operation, Cause: cause}
}

func NewRemoteFailureErrorWithMessage(operation, message string, cause error) *RemoteFailureError {
	return &RemoteFailureError{Operation: operation, Message: message, Cause: cause}
}

func (e *RemoteFailureError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrRemoteFailure, e.Operation)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *RemoteFailureError) Unwrap() error {
	return ErrRemoteFailure
}

func (e *RemoteFailureError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// UserMessage is the text safe to show to an end user.
func (e *RemoteFailureError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return defaultRemoteMessage
}

type GeolocationReason int

const (
	GeolocationPermissionDenied GeolocationReason = iota + 1
	GeolocationPositionUnavailable
	GeolocationTimeout
)

func (r GeolocationReason) String() string {
	switch r {
	case GeolocationPermissionDenied:
		return "PermissionDenied"
	case GeolocationPositionUnavailable:
		return "PositionUnavailable"
	case GeolocationTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// GeolocationError reports why the device position could not be read.
type GeolocationError struct {
	Reason GeolocationReason
	Cause  error
}

func NewGeolocationError(reason GeolocationReason, cause error) *GeolocationError {
	return &GeolocationError{Reason: reason, Cause: cause}
}

// Message is the per-reason text shown to the courier.
func (e *GeolocationError) Message() string {
	switch e.Reason {
	case GeolocationPermissionDenied:
		return "Location permission was denied. Enable location access to share your position."
	case GeolocationPositionUnavailable:
		return "Your location is currently unavailable."
	case GeolocationTimeout:
		return "Timed out while reading your location."
	default:
		return "Unable to read your location."
	}
}

func (e *GeolocationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrGeolocation, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrGeolocation, e.Reason)
}

func (e *GeolocationError) Unwrap() error {
	return ErrGeolocation
}

func (e *GeolocationError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}
