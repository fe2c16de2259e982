package split

import (
	"fmt"
	"math"
)

// Plan computes per-recipient payouts for an amount.
//
// Every entry but the last receives floor(amount * percent / 100); the last
// entry receives whatever remains. Because percentages sum to exactly 100,
// the floor shares can undershoot the amount by at most len(entries)-1
// units, and assigning that remainder to the last recipient makes the
// payouts an exact partition of the amount for every value, not only
// multiples of 100.
func (r *Registry) Plan(amount uint64) ([]Payout, error) {
	if len(r.entries) == 0 {
		return nil, ErrNoSplitsDefined
	}
	if amount > math.MaxUint64/100 {
		return nil, fmt.Errorf("%w: %d", ErrAmountTooLarge, amount)
	}

	payouts := make([]Payout, len(r.entries))
	var distributed uint64

	for i, entry := range r.entries {
		payouts[i].Address = entry.Address
		if i == len(r.entries)-1 {
			payouts[i].Amount = amount - distributed
			distributed = amount
		} else {
			share := amount * uint64(entry.Percent) / 100
			payouts[i].Amount = share
			distributed += share
		}
	}

	if distributed != amount {
		return nil, fmt.Errorf("%w: distributed %d of %d", ErrDistributionMismatch, distributed, amount)
	}
	return payouts, nil
}

// Distribute computes the payout plan for an amount and applies it through
// pay, in registry iteration order. The first pay error aborts the run and
// is returned; the caller owns rolling back any payouts already applied.
func (r *Registry) Distribute(amount uint64, pay func(Payout) error) error {
	payouts, err := r.Plan(amount)
	if err != nil {
		return err
	}
	for _, p := range payouts {
		if err := pay(p); err != nil {
			return err
		}
	}
	return nil
}
