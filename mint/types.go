package mint

import (
	"fmt"
	"math"

	"github.com/capmintorg/libcapmint-go/wallet"
)

// MaxMintPerCall bounds the quantity of a single mint request.
const MaxMintPerCall = 255

// Params fixes the economic parameters of a contract. MaxSupply and
// MaxPublicMint are immutable for the life of the contract; UnitPrice can
// be changed by the administrative role and applies only to future mints.
type Params struct {
	MaxSupply     uint64 `json:"max_supply"`      // series supply cap
	MaxPublicMint uint64 `json:"max_public_mint"` // per-wallet public mint cap
	UnitPrice     uint64 `json:"unit_price"`      // smallest currency unit per token
}

// Validate checks the parameters against acceptable ranges.
func (p Params) Validate() error {
	if p.MaxSupply == 0 {
		return fmt.Errorf("%w: max supply must be positive", ErrInvalidParams)
	}
	if p.MaxPublicMint == 0 || p.MaxPublicMint > p.MaxSupply {
		return fmt.Errorf("%w: max public mint must be between 1 and the supply cap", ErrInvalidParams)
	}
	if p.UnitPrice == 0 {
		return fmt.Errorf("%w: unit price must be positive", ErrInvalidParams)
	}
	return nil
}

// cost returns UnitPrice * qty, or false on uint64 overflow.
func (p Params) cost(qty uint64) (uint64, bool) {
	if qty != 0 && p.UnitPrice > math.MaxUint64/qty {
		return 0, false
	}
	return p.UnitPrice * qty, true
}

// Receipt records a completed public mint.
type Receipt struct {
	Buyer     wallet.Address `json:"buyer"`
	Quantity  uint64         `json:"quantity"`
	Paid      uint64         `json:"paid"`      // full attached payment, overpayment included
	TokenIDs  []uint64       `json:"token_ids"` // issued IDs, ascending
	Timestamp int64          `json:"timestamp"` // Unix seconds
}
