package mint

import "errors"

var (
	// ErrMintingPaused indicates the public mint is paused.
	ErrMintingPaused = errors.New("mint: minting is paused")

	// ErrSupplyExceeded indicates the request would exceed the supply cap.
	ErrSupplyExceeded = errors.New("mint: supply cap exceeded")

	// ErrInsufficientPayment indicates the attached payment does not cover the price.
	ErrInsufficientPayment = errors.New("mint: insufficient payment")

	// ErrWalletCapExceeded indicates the request would exceed the per-wallet mint cap.
	ErrWalletCapExceeded = errors.New("mint: wallet mint cap exceeded")

	// ErrDevMintLocked indicates privileged minting has been locked.
	ErrDevMintLocked = errors.New("mint: dev minting is locked")

	// ErrReentrantCall indicates a nested call into the controller during an operation.
	ErrReentrantCall = errors.New("mint: reentrant call")

	// ErrUnauthorized indicates the caller does not hold the administrative role.
	ErrUnauthorized = errors.New("mint: caller is not the administrative role")

	// ErrInvalidQuantity indicates a quantity of zero or above the per-call bound.
	ErrInvalidQuantity = errors.New("mint: quantity must be between 1 and 255")

	// ErrInvalidPrice indicates a unit price of zero.
	ErrInvalidPrice = errors.New("mint: unit price must be positive")

	// ErrInvalidParams indicates contract parameters outside acceptable ranges.
	ErrInvalidParams = errors.New("mint: invalid contract parameters")

	// ErrZeroAddress indicates a required address is the empty sentinel.
	ErrZeroAddress = errors.New("mint: zero address")

	// ErrStateNotFound indicates the store holds no saved contract state.
	ErrStateNotFound = errors.New("mint: no saved contract state")

	// ErrInvalidState indicates persisted contract state is malformed.
	ErrInvalidState = errors.New("mint: invalid contract state")
)
