package domain

import "errors"

var (
	ErrValidation         = errors.New("invalid input")
	ErrPostNotFound       = errors.New("post not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	// ErrOwnerNotFound signals the synchronizer could not resolve the
	// owning user referenced by a post's embedded snapshot.
	ErrOwnerNotFound = errors.New("post owner not found")

	// ErrUpstreamStorage marks a failed object-store call. Callers downgrade
	// it to "no remote copy" instead of aborting the mutation.
	ErrUpstreamStorage = errors.New("object storage upload failed")
)
