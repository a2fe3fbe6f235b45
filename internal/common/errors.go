// Package common defines sentinel errors shared by the carpool packages.
// Callers should match them with errors.Is.
package common

import "errors"

var (
	// Input errors: a required field is missing or malformed.
	ErrValidation = errors.New("validation error")

	// Lookup errors surfaced to the user.
	ErrAddressNotFound = errors.New("address not found")
)
