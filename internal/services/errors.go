package services

import "errors"

var (
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrAddressesRequired blocks trip features until home and work are set.
	ErrAddressesRequired = errors.New("home and work addresses are required")
)
