package ledger

import "errors"

var (
	// ErrUnknownToken indicates the token ID has never been issued.
	ErrUnknownToken = errors.New("ledger: unknown token")

	// ErrNotTokenOwner indicates the caller does not own the token.
	ErrNotTokenOwner = errors.New("ledger: caller is not the token owner")

	// ErrZeroAddress indicates an owner address is the empty sentinel.
	ErrZeroAddress = errors.New("ledger: zero address")

	// ErrInvalidQuantity indicates an issuance quantity of zero.
	ErrInvalidQuantity = errors.New("ledger: quantity must be positive")
)
