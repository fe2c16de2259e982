// Package split holds the recipient registry and the payment-splitting
// algorithm for the mint contract.
//
// The registry maps recipient addresses to whole-number percentage shares
// that must sum to exactly 100. It is replaced wholesale by each successful
// configuration and can be locked irreversibly, after which its contents
// are fixed for the life of the contract. Distribution iterates entries in
// their configured order, which never changes between configurations.
package split

import (
	"fmt"

	"github.com/capmintorg/libcapmint-go/wallet"
)

// maxEntries bounds a single configuration. Shares are whole percentages
// summing to 100, so more recipients than that cannot each hold a share.
const maxEntries = 100

// Registry is the lockable recipient → percentage mapping.
type Registry struct {
	entries []Entry
	locked  bool
}

// NewRegistry creates an empty, unlocked registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Set replaces the entire registry content with the given parallel lists.
// The registry is left unchanged if any validation fails. Duplicate
// addresses are rejected rather than merged: repeated entries are almost
// always a configuration mistake, and rejecting keeps one address to one
// share.
func (r *Registry) Set(addrs []wallet.Address, percents []uint8) error {
	if r.locked {
		return ErrSplitsLocked
	}
	entries, err := buildEntries(addrs, percents)
	if err != nil {
		return err
	}
	r.entries = entries
	return nil
}

// buildEntries validates the parallel lists and assembles the entry slice.
func buildEntries(addrs []wallet.Address, percents []uint8) ([]Entry, error) {
	if len(addrs) != len(percents) {
		return nil, fmt.Errorf("%w: %d addresses, %d percentages", ErrLengthMismatch, len(addrs), len(percents))
	}
	if len(addrs) == 0 {
		return nil, ErrNoEntries
	}

	entries := make([]Entry, len(addrs))
	for i, addr := range addrs {
		entries[i] = Entry{Address: addr, Percent: percents[i]}
	}
	if err := validateEntries(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// validateEntries checks the per-entry and aggregate invariants shared by
// configuration and deserialization: bounded entry count, no zero
// addresses, percentages 1..100, no duplicate recipients, sum exactly 100.
func validateEntries(entries []Entry) error {
	if len(entries) > maxEntries {
		return fmt.Errorf("%w: %d entries exceed %d", ErrInvalidSplitTotal, len(entries), maxEntries)
	}

	seen := make(map[wallet.Address]struct{}, len(entries))
	var total uint32

	for i, entry := range entries {
		if entry.Address.IsZero() {
			return fmt.Errorf("%w: entry %d has zero address", ErrInvalidShare, i)
		}
		if entry.Percent == 0 || entry.Percent > 100 {
			return fmt.Errorf("%w: entry %d has %d", ErrInvalidShare, i, entry.Percent)
		}
		if _, ok := seen[entry.Address]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateRecipient, entry.Address)
		}
		seen[entry.Address] = struct{}{}
		total += uint32(entry.Percent)
	}

	if total != 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidSplitTotal, total)
	}
	return nil
}

// Lock freezes the registry permanently. Locking an already locked
// registry is a no-op.
func (r *Registry) Lock() {
	r.locked = true
}

// Locked reports whether the registry has been locked.
func (r *Registry) Locked() bool {
	return r.locked
}

// Len returns the number of configured entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the configured entries in iteration order.
func (r *Registry) Entries() []Entry {
	cpy := make([]Entry, len(r.entries))
	copy(cpy, r.entries)
	return cpy
}

// Snapshot captures the registry for later restoration.
type Snapshot struct {
	entries []Entry
	locked  bool
}

// Snapshot returns a copy of the current registry state.
func (r *Registry) Snapshot() *Snapshot {
	return &Snapshot{entries: r.Entries(), locked: r.locked}
}

// Restore resets the registry to a previously captured snapshot. The lock
// flag is restored too, so failed operations can undo even a Lock.
func (r *Registry) Restore(snap *Snapshot) {
	r.entries = make([]Entry, len(snap.entries))
	copy(r.entries, snap.entries)
	r.locked = snap.locked
}
