package split

import "github.com/capmintorg/libcapmint-go/wallet"

// Entry is one recipient's locked-in percentage share.
type Entry struct {
	Address wallet.Address // payout destination
	Percent uint8          // whole-number percentage, 1..100
}

// Payout is a single computed transfer in a distribution.
type Payout struct {
	Address wallet.Address
	Amount  uint64
}
