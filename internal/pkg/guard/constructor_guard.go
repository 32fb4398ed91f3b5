// Package guard lets aggregates, value objects, commands, and queries detect
// whether they were built through their constructor or are a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field and set only by constructors.
// A zero-value guard fails validation.
//
// Example:
//
//	type Rating struct {
//	    score int
//	    guard guard.ConstructorGuard
//	}
//
//	func (r Rating) Validate() error {
//	    return r.guard.Validate(ErrRatingIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
