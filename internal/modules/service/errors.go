package service

import "errors"

// Service layer errors. Handlers map these to response codes; everything
// else surfaces as an internal error.
var (
	// ErrEmailTaken rejects registration with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers unknown email, malformed stored hash, and
	// password mismatch alike, so responses never reveal which one happened.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotFound is returned by update/delete operations on an absent id.
	ErrNotFound = errors.New("not found")

	// ErrNameTaken rejects restoring a project whose name was reused while
	// it was inactive.
	ErrNameTaken = errors.New("project name already in use")
)
