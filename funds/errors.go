package funds

import "errors"

var (
	// ErrInsufficientBalance indicates the sender cannot cover the transfer.
	ErrInsufficientBalance = errors.New("funds: insufficient balance")

	// ErrTransferRejected indicates the recipient refused the transfer.
	ErrTransferRejected = errors.New("funds: transfer rejected by recipient")

	// ErrZeroAddress indicates a transfer endpoint is the empty address.
	ErrZeroAddress = errors.New("funds: zero address")

	// ErrAmountOverflow indicates a credit would overflow the recipient balance.
	ErrAmountOverflow = errors.New("funds: amount overflows balance")
)
