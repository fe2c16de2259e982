// Package ledger tracks ownership of sequentially numbered tokens.
//
// Token IDs start at 1 and increase by one per issued token; the total
// issued counter never decreases except through an explicit snapshot
// restore by the owning controller. The ledger itself enforces no supply
// cap — the mint controller gates supply before requesting issuance.
package ledger

import (
	"fmt"

	"github.com/capmintorg/libcapmint-go/wallet"
)

// Ledger assigns sequential token IDs and records their owners.
type Ledger struct {
	totalIssued uint64
	owners      map[uint64]wallet.Address
	balances    map[wallet.Address]uint64
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		owners:   make(map[uint64]wallet.Address),
		balances: make(map[wallet.Address]uint64),
	}
}

// Issue assigns qty new sequential token IDs to the owner and returns them.
func (l *Ledger) Issue(to wallet.Address, qty uint64) ([]uint64, error) {
	if to.IsZero() {
		return nil, fmt.Errorf("%w: issue recipient", ErrZeroAddress)
	}
	if qty == 0 {
		return nil, ErrInvalidQuantity
	}

	ids := make([]uint64, qty)
	for i := uint64(0); i < qty; i++ {
		id := l.totalIssued + i + 1
		l.owners[id] = to
		ids[i] = id
	}
	l.totalIssued += qty
	l.balances[to] += qty
	return ids, nil
}

// TotalIssued returns the number of tokens issued so far.
func (l *Ledger) TotalIssued() uint64 {
	return l.totalIssued
}

// Exists reports whether the token ID has been issued.
func (l *Ledger) Exists(id uint64) bool {
	_, ok := l.owners[id]
	return ok
}

// OwnerOf returns the current owner of a token.
func (l *Ledger) OwnerOf(id uint64) (wallet.Address, error) {
	owner, ok := l.owners[id]
	if !ok {
		return wallet.ZeroAddress, fmt.Errorf("%w: id %d", ErrUnknownToken, id)
	}
	return owner, nil
}

// BalanceOf returns the number of tokens held by an address.
func (l *Ledger) BalanceOf(addr wallet.Address) uint64 {
	return l.balances[addr]
}

// Transfer moves a token between owners. The from address must be the
// current owner.
func (l *Ledger) Transfer(from, to wallet.Address, id uint64) error {
	if to.IsZero() {
		return fmt.Errorf("%w: transfer recipient", ErrZeroAddress)
	}
	owner, ok := l.owners[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrUnknownToken, id)
	}
	if owner != from {
		return fmt.Errorf("%w: id %d", ErrNotTokenOwner, id)
	}

	l.owners[id] = to
	l.balances[from]--
	l.balances[to]++
	return nil
}

// Owners returns a copy of the id → owner table, for persistence.
func (l *Ledger) Owners() map[uint64]wallet.Address {
	cpy := make(map[uint64]wallet.Address, len(l.owners))
	for id, owner := range l.owners {
		cpy[id] = owner
	}
	return cpy
}

// NewFromOwners reconstructs a ledger from a persisted owner table.
// IDs are sequential and never retired, so the total issued count is the
// table size.
func NewFromOwners(owners map[uint64]wallet.Address) *Ledger {
	l := New()
	for id, owner := range owners {
		l.owners[id] = owner
		l.balances[owner]++
	}
	l.totalIssued = uint64(len(owners))
	return l
}

// Snapshot captures the full ledger state for later restore.
type Snapshot struct {
	totalIssued uint64
	owners      map[uint64]wallet.Address
	balances    map[wallet.Address]uint64
}

// Snapshot returns a copy of the current ledger state.
func (l *Ledger) Snapshot() *Snapshot {
	owners := make(map[uint64]wallet.Address, len(l.owners))
	for id, owner := range l.owners {
		owners[id] = owner
	}
	balances := make(map[wallet.Address]uint64, len(l.balances))
	for addr, n := range l.balances {
		balances[addr] = n
	}
	return &Snapshot{
		totalIssued: l.totalIssued,
		owners:      owners,
		balances:    balances,
	}
}

// Restore resets the ledger to a previously captured snapshot.
func (l *Ledger) Restore(snap *Snapshot) {
	l.totalIssued = snap.totalIssued
	l.owners = make(map[uint64]wallet.Address, len(snap.owners))
	for id, owner := range snap.owners {
		l.owners[id] = owner
	}
	l.balances = make(map[wallet.Address]uint64, len(snap.balances))
	for addr, n := range snap.balances {
		l.balances[addr] = n
	}
}
