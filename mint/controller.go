// Package mint implements the minting and fund-distribution state machine:
// a single contract that issues a capped series of sequential tokens
// against payment and routes every received payment through a lockable
// percentage-split registry.
//
// Execution is sequential: every operation runs to completion or fully
// rolls back before the next begins. A Controller is not safe for
// concurrent use by multiple goroutines. The in-progress guard exists to
// reject reentrant invocation — a payment recipient whose Receiver hook
// calls back into the controller gets ErrReentrantCall immediately — not
// to serialize goroutines.
package mint

import (
	"fmt"
	"time"

	"github.com/capmintorg/libcapmint-go/funds"
	"github.com/capmintorg/libcapmint-go/ledger"
	"github.com/capmintorg/libcapmint-go/metadata"
	"github.com/capmintorg/libcapmint-go/split"
	"github.com/capmintorg/libcapmint-go/wallet"
)

// Controller owns all contract state: supply accounting, per-wallet mint
// records, pricing, pause flags, the split registry, and the metadata
// resolver. All state mutations go through guarded operations that take
// the calling address explicitly.
type Controller struct {
	inCall bool // reentrancy guard

	params       Params
	admin        wallet.Address
	contractAddr wallet.Address

	minted        map[wallet.Address]uint64
	mintPaused    bool
	devMintLocked bool

	ledger   *ledger.Ledger
	bank     *funds.Bank
	registry *split.Registry
	resolver *metadata.Resolver

	store Store // optional; nil disables persistence
}

// NewController creates a fresh contract. The bank may be shared with the
// caller's environment (nil creates a private one); contractAddr is the
// account that holds attached payments until they are distributed.
func NewController(admin, contractAddr wallet.Address, params Params, bank *funds.Bank) (*Controller, error) {
	if admin.IsZero() {
		return nil, fmt.Errorf("%w: admin", ErrZeroAddress)
	}
	if contractAddr.IsZero() {
		return nil, fmt.Errorf("%w: contract account", ErrZeroAddress)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if bank == nil {
		bank = funds.NewBank()
	}

	c := &Controller{
		params:       params,
		admin:        admin,
		contractAddr: contractAddr,
		minted:       make(map[wallet.Address]uint64),
		ledger:       ledger.New(),
		bank:         bank,
		registry:     split.NewRegistry(),
	}
	c.resolver = metadata.NewResolver(c.ledger)
	return c, nil
}

// begin acquires the in-progress guard; nested entry fails immediately.
func (c *Controller) begin() error {
	if c.inCall {
		return ErrReentrantCall
	}
	c.inCall = true
	return nil
}

// end releases the guard. Always deferred so every exit path clears it.
func (c *Controller) end() {
	c.inCall = false
}

// requireAdmin checks the administrative capability.
func (c *Controller) requireAdmin(caller wallet.Address) error {
	if caller != c.admin {
		return ErrUnauthorized
	}
	return nil
}

// Mint issues qty tokens to the caller against the attached payment and
// distributes the full payment through the split registry.
//
// Preconditions, checked in order: minting not paused; supply cap;
// payment covers UnitPrice*qty (overpayment is accepted, never refunded,
// and distributed along with the rest); per-wallet cap. Any failure after
// the checks — a recipient refusing its share, a distribution fault, a
// persistence fault — rolls the whole operation back: counters, issuance,
// and balances.
func (c *Controller) Mint(caller wallet.Address, qty, payment uint64) (*Receipt, error) {
	if err := c.begin(); err != nil {
		return nil, err
	}
	defer c.end()

	if caller.IsZero() {
		return nil, fmt.Errorf("%w: caller", ErrZeroAddress)
	}
	if qty == 0 || qty > MaxMintPerCall {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	if c.mintPaused {
		return nil, ErrMintingPaused
	}
	if c.ledger.TotalIssued()+qty > c.params.MaxSupply {
		return nil, fmt.Errorf("%w: %d issued, %d requested, cap %d",
			ErrSupplyExceeded, c.ledger.TotalIssued(), qty, c.params.MaxSupply)
	}
	cost, ok := c.params.cost(qty)
	if !ok || payment < cost {
		return nil, fmt.Errorf("%w: attached %d, need %d", ErrInsufficientPayment, payment, cost)
	}
	if c.minted[caller]+qty > c.params.MaxPublicMint {
		return nil, fmt.Errorf("%w: %d minted, %d requested, cap %d",
			ErrWalletCapExceeded, c.minted[caller], qty, c.params.MaxPublicMint)
	}

	ledgerSnap := c.ledger.Snapshot()
	bankSnap := c.bank.Snapshot()
	prevCount := c.minted[caller]

	rollback := func() {
		c.minted[caller] = prevCount
		c.ledger.Restore(ledgerSnap)
		c.bank.Restore(bankSnap)
	}

	c.minted[caller] = prevCount + qty
	ids, err := c.ledger.Issue(caller, qty)
	if err != nil {
		rollback()
		return nil, err
	}
	if err := c.distribute(payment); err != nil {
		rollback()
		return nil, err
	}
	if err := c.save(); err != nil {
		rollback()
		return nil, err
	}

	return &Receipt{
		Buyer:     caller,
		Quantity:  qty,
		Paid:      payment,
		TokenIDs:  ids,
		Timestamp: time.Now().Unix(),
	}, nil
}

// distribute deposits an incoming payment to the contract account and pays
// it out through the registry. Callers own rollback on error.
func (c *Controller) distribute(amount uint64) error {
	if err := c.bank.Deposit(c.contractAddr, amount); err != nil {
		return err
	}
	return c.registry.Distribute(amount, func(p split.Payout) error {
		return c.bank.Transfer(c.contractAddr, p.Address, p.Amount)
	})
}

// DevMint issues qty tokens to the administrative address without payment.
// It bypasses per-wallet counters, pricing, and distribution; only the
// supply cap and the dev-mint lock gate it.
func (c *Controller) DevMint(caller wallet.Address, qty uint64) ([]uint64, error) {
	if err := c.begin(); err != nil {
		return nil, err
	}
	defer c.end()

	if err := c.requireAdmin(caller); err != nil {
		return nil, err
	}
	if c.devMintLocked {
		return nil, ErrDevMintLocked
	}
	if qty == 0 || qty > MaxMintPerCall {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	if c.ledger.TotalIssued()+qty > c.params.MaxSupply {
		return nil, fmt.Errorf("%w: %d issued, %d requested, cap %d",
			ErrSupplyExceeded, c.ledger.TotalIssued(), qty, c.params.MaxSupply)
	}

	ledgerSnap := c.ledger.Snapshot()
	ids, err := c.ledger.Issue(c.admin, qty)
	if err != nil {
		return nil, err
	}
	if err := c.save(); err != nil {
		c.ledger.Restore(ledgerSnap)
		return nil, err
	}
	return ids, nil
}

// LockDevMint permanently disables privileged minting. Locking twice is a
// no-op.
func (c *Controller) LockDevMint(caller wallet.Address) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	prev := c.devMintLocked
	c.devMintLocked = true
	if err := c.save(); err != nil {
		c.devMintLocked = prev
		return err
	}
	return nil
}

// SetPrice sets the unit price for future mints. Completed mints are
// unaffected.
func (c *Controller) SetPrice(caller wallet.Address, price uint64) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	if price == 0 {
		return ErrInvalidPrice
	}
	prev := c.params.UnitPrice
	c.params.UnitPrice = price
	if err := c.save(); err != nil {
		c.params.UnitPrice = prev
		return err
	}
	return nil
}

// Pause suspends public minting.
func (c *Controller) Pause(caller wallet.Address) error {
	return c.setPaused(caller, true)
}

// Resume reopens public minting.
func (c *Controller) Resume(caller wallet.Address) error {
	return c.setPaused(caller, false)
}

func (c *Controller) setPaused(caller wallet.Address, paused bool) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	prev := c.mintPaused
	c.mintPaused = paused
	if err := c.save(); err != nil {
		c.mintPaused = prev
		return err
	}
	return nil
}

// SetSplits replaces the split registry with the given parallel lists of
// recipients and whole-number percentages summing to exactly 100.
func (c *Controller) SetSplits(caller wallet.Address, addrs []wallet.Address, percents []uint8) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	snap := c.registry.Snapshot()
	if err := c.registry.Set(addrs, percents); err != nil {
		return err
	}
	if err := c.save(); err != nil {
		c.registry.Restore(snap)
		return err
	}
	return nil
}

// LockSplits freezes the split registry permanently.
func (c *Controller) LockSplits(caller wallet.Address) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	snap := c.registry.Snapshot()
	c.registry.Lock()
	if err := c.save(); err != nil {
		c.registry.Restore(snap)
		return err
	}
	return nil
}

// Withdraw distributes the contract's full held balance through the split
// registry. Any transfer failure rolls the whole withdrawal back.
func (c *Controller) Withdraw(caller wallet.Address) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.requireAdmin(caller); err != nil {
		return err
	}

	amount := c.bank.BalanceOf(c.contractAddr)
	bankSnap := c.bank.Snapshot()

	err := c.registry.Distribute(amount, func(p split.Payout) error {
		return c.bank.Transfer(c.contractAddr, p.Address, p.Amount)
	})
	if err != nil {
		c.bank.Restore(bankSnap)
		return err
	}
	if err := c.save(); err != nil {
		c.bank.Restore(bankSnap)
		return err
	}
	return nil
}

// TransferAdmin hands the administrative capability to a new address.
func (c *Controller) TransferAdmin(caller, next wallet.Address) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	if next.IsZero() {
		return fmt.Errorf("%w: new admin", ErrZeroAddress)
	}
	prev := c.admin
	c.admin = next
	if err := c.save(); err != nil {
		c.admin = prev
		return err
	}
	return nil
}

// Reveal permanently switches metadata resolution from the placeholder to
// the base reference.
func (c *Controller) Reveal(caller wallet.Address) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	snap := c.resolver.Snapshot()
	c.resolver.Reveal()
	if err := c.save(); err != nil {
		c.resolver.Restore(snap)
		return err
	}
	return nil
}

// SetBaseURI sets the post-reveal metadata base reference.
func (c *Controller) SetBaseURI(caller wallet.Address, uri string) error {
	return c.setURI(caller, uri, c.resolver.SetBaseURI)
}

// SetPlaceholderURI sets the pre-reveal placeholder reference.
func (c *Controller) SetPlaceholderURI(caller wallet.Address, uri string) error {
	return c.setURI(caller, uri, c.resolver.SetPlaceholderURI)
}

func (c *Controller) setURI(caller wallet.Address, uri string, set func(string) error) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	snap := c.resolver.Snapshot()
	if err := set(uri); err != nil {
		return err
	}
	if err := c.save(); err != nil {
		c.resolver.Restore(snap)
		return err
	}
	return nil
}

// TransferToken moves a token between owners through the ownership ledger.
func (c *Controller) TransferToken(caller, to wallet.Address, id uint64) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.ledger.Transfer(caller, to, id); err != nil {
		return err
	}
	if err := c.save(); err != nil {
		// Undo by transferring back; the reverse of a valid transfer is valid.
		_ = c.ledger.Transfer(to, caller, id)
		return err
	}
	return nil
}

// Quote returns the total price for minting qty tokens at the current unit
// price.
func (c *Controller) Quote(qty uint64) (uint64, error) {
	if qty == 0 || qty > MaxMintPerCall {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	cost, ok := c.params.cost(qty)
	if !ok {
		return 0, fmt.Errorf("%w: price overflow", ErrInvalidQuantity)
	}
	return cost, nil
}

// --- Queries ---

// TotalIssued returns the number of tokens issued so far.
func (c *Controller) TotalIssued() uint64 { return c.ledger.TotalIssued() }

// Remaining returns the number of tokens still available under the cap.
func (c *Controller) Remaining() uint64 { return c.params.MaxSupply - c.ledger.TotalIssued() }

// MintedBy returns how many tokens an address has publicly minted.
func (c *Controller) MintedBy(addr wallet.Address) uint64 { return c.minted[addr] }

// Price returns the current unit price.
func (c *Controller) Price() uint64 { return c.params.UnitPrice }

// Params returns the contract parameters.
func (c *Controller) Params() Params { return c.params }

// Paused reports whether public minting is paused.
func (c *Controller) Paused() bool { return c.mintPaused }

// DevMintLocked reports whether privileged minting has been locked.
func (c *Controller) DevMintLocked() bool { return c.devMintLocked }

// SplitsLocked reports whether the split registry has been locked.
func (c *Controller) SplitsLocked() bool { return c.registry.Locked() }

// Splits returns the configured split entries in iteration order.
func (c *Controller) Splits() []split.Entry { return c.registry.Entries() }

// HeldBalance returns the funds held by the contract account, pending the
// next distribution.
func (c *Controller) HeldBalance() uint64 { return c.bank.BalanceOf(c.contractAddr) }

// Admin returns the address holding the administrative capability.
func (c *Controller) Admin() wallet.Address { return c.admin }

// ContractAddress returns the contract's own payment account.
func (c *Controller) ContractAddress() wallet.Address { return c.contractAddr }

// Bank returns the bank shared with the contract's environment.
func (c *Controller) Bank() *funds.Bank { return c.bank }

// Exists reports whether a token ID has been issued.
func (c *Controller) Exists(id uint64) bool { return c.ledger.Exists(id) }

// OwnerOf returns the owner of a token.
func (c *Controller) OwnerOf(id uint64) (wallet.Address, error) { return c.ledger.OwnerOf(id) }

// BalanceOf returns the number of tokens held by an address.
func (c *Controller) BalanceOf(addr wallet.Address) uint64 { return c.ledger.BalanceOf(addr) }

// Revealed reports whether the series has been revealed.
func (c *Controller) Revealed() bool { return c.resolver.Revealed() }

// TokenURI resolves a token ID to its metadata reference.
func (c *Controller) TokenURI(id uint64) (string, error) { return c.resolver.TokenURI(id) }
