package metadata

import "errors"

var (
	// ErrInvalidURI indicates a base or placeholder URI is malformed.
	ErrInvalidURI = errors.New("metadata: invalid URI")

	// ErrUnknownToken indicates the token ID has never been issued.
	ErrUnknownToken = errors.New("metadata: unknown token")

	// ErrNoPlaceholder indicates no placeholder URI is configured while unrevealed.
	ErrNoPlaceholder = errors.New("metadata: no placeholder URI configured")

	// ErrNoBaseURI indicates no base URI is configured while revealed.
	ErrNoBaseURI = errors.New("metadata: no base URI configured")
)
