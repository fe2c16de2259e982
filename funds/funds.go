// Package funds models value accounts for the mint contract.
//
// Recipients are payable sinks: an account may register a Receiver hook
// that runs on every incoming transfer and may refuse it. A refused
// transfer leaves both balances untouched, so callers can treat any
// transfer as all-or-nothing.
package funds

import (
	"fmt"

	"github.com/capmintorg/libcapmint-go/wallet"
)

// Receiver is the hook invoked when an account is credited by a transfer.
// Returning a non-nil error refuses the payment.
type Receiver interface {
	Receive(from wallet.Address, amount uint64) error
}

// ReceiverFunc adapts a function to the Receiver interface.
type ReceiverFunc func(from wallet.Address, amount uint64) error

// Receive implements Receiver.
func (f ReceiverFunc) Receive(from wallet.Address, amount uint64) error {
	return f(from, amount)
}

// Bank tracks account balances in the smallest currency unit.
type Bank struct {
	balances  map[wallet.Address]uint64
	receivers map[wallet.Address]Receiver
}

// NewBank creates an empty bank.
func NewBank() *Bank {
	return &Bank{
		balances:  make(map[wallet.Address]uint64),
		receivers: make(map[wallet.Address]Receiver),
	}
}

// SetReceiver registers (or, with nil, clears) the payment hook for addr.
// Hooks are environment, not ledger state: snapshots do not capture them.
func (b *Bank) SetReceiver(addr wallet.Address, r Receiver) {
	if r == nil {
		delete(b.receivers, addr)
		return
	}
	b.receivers[addr] = r
}

// Deposit credits external value entering the system to an account.
// Attached payments are accepted unconditionally; no Receiver hook runs.
func (b *Bank) Deposit(to wallet.Address, amount uint64) error {
	if to.IsZero() {
		return fmt.Errorf("%w: deposit recipient", ErrZeroAddress)
	}
	if b.balances[to]+amount < b.balances[to] {
		return fmt.Errorf("%w: deposit of %d", ErrAmountOverflow, amount)
	}
	b.balances[to] += amount
	return nil
}

// Transfer moves amount from one account to another. The recipient's
// Receiver hook, if registered, runs before any balance changes; a hook
// error refuses the whole transfer.
func (b *Bank) Transfer(from, to wallet.Address, amount uint64) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: transfer endpoint", ErrZeroAddress)
	}
	if b.balances[from] < amount {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, b.balances[from], amount)
	}
	if b.balances[to]+amount < b.balances[to] {
		return fmt.Errorf("%w: transfer of %d", ErrAmountOverflow, amount)
	}

	if r, ok := b.receivers[to]; ok {
		if err := r.Receive(from, amount); err != nil {
			return fmt.Errorf("%w: %w", ErrTransferRejected, err)
		}
	}

	b.balances[from] -= amount
	b.balances[to] += amount
	return nil
}

// Balances returns a copy of all account balances, for persistence.
func (b *Bank) Balances() map[wallet.Address]uint64 {
	cpy := make(map[wallet.Address]uint64, len(b.balances))
	for addr, bal := range b.balances {
		cpy[addr] = bal
	}
	return cpy
}

// NewBankFromBalances reconstructs a bank from persisted balances.
// Receiver hooks are environment state and must be re-registered.
func NewBankFromBalances(balances map[wallet.Address]uint64) *Bank {
	b := NewBank()
	for addr, bal := range balances {
		b.balances[addr] = bal
	}
	return b
}

// BalanceOf returns the current balance of an account.
func (b *Bank) BalanceOf(addr wallet.Address) uint64 {
	return b.balances[addr]
}

// Snapshot captures all balances for later restore.
type Snapshot struct {
	balances map[wallet.Address]uint64
}

// Snapshot returns a copy of the current balances.
func (b *Bank) Snapshot() *Snapshot {
	cpy := make(map[wallet.Address]uint64, len(b.balances))
	for addr, bal := range b.balances {
		cpy[addr] = bal
	}
	return &Snapshot{balances: cpy}
}

// Restore resets all balances to a previously captured snapshot.
func (b *Bank) Restore(snap *Snapshot) {
	b.balances = make(map[wallet.Address]uint64, len(snap.balances))
	for addr, bal := range snap.balances {
		b.balances[addr] = bal
	}
}
