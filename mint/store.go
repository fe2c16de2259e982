package mint

import (
	"fmt"

	"github.com/capmintorg/libcapmint-go/funds"
	"github.com/capmintorg/libcapmint-go/ledger"
	"github.com/capmintorg/libcapmint-go/metadata"
	"github.com/capmintorg/libcapmint-go/split"
	"github.com/capmintorg/libcapmint-go/wallet"
)

// State is the full persistable contract state. The split registry is
// carried in its binary serialized form.
type State struct {
	Params         Params
	Admin          wallet.Address
	ContractAddr   wallet.Address
	MintPaused     bool
	DevMintLocked  bool
	Revealed       bool
	BaseURI        string
	PlaceholderURI string
	Minted         map[wallet.Address]uint64
	Registry       []byte
	Owners         map[uint64]wallet.Address
	Balances       map[wallet.Address]uint64
}

// Store persists contract state. Save must be atomic: a failed save leaves
// the previously saved state intact.
type Store interface {
	// Save persists a full state snapshot.
	Save(st *State) error

	// Load returns the last saved state, or ErrStateNotFound.
	Load() (*State, error)

	// Close releases the store.
	Close() error
}

// state captures the controller's current state for persistence.
func (c *Controller) state() *State {
	minted := make(map[wallet.Address]uint64, len(c.minted))
	for addr, n := range c.minted {
		minted[addr] = n
	}
	return &State{
		Params:         c.params,
		Admin:          c.admin,
		ContractAddr:   c.contractAddr,
		MintPaused:     c.mintPaused,
		DevMintLocked:  c.devMintLocked,
		Revealed:       c.resolver.Revealed(),
		BaseURI:        c.resolver.BaseURI(),
		PlaceholderURI: c.resolver.PlaceholderURI(),
		Minted:         minted,
		Registry:       split.SerializeRegistry(c.registry),
		Owners:         c.ledger.Owners(),
		Balances:       c.bank.Balances(),
	}
}

// save persists the current state if a store is attached.
func (c *Controller) save() error {
	if c.store == nil {
		return nil
	}
	return c.store.Save(c.state())
}

// Persist attaches a store to the controller and saves the current state
// immediately. Every subsequent successful mutating operation saves a new
// snapshot; a failed save rolls the operation back.
func (c *Controller) Persist(store Store) error {
	c.store = store
	return c.save()
}

// Open restores a controller from the state saved in a store and keeps the
// store attached. Receiver hooks on the bank are environment state and
// must be re-registered by the caller.
func Open(store Store) (*Controller, error) {
	st, err := store.Load()
	if err != nil {
		return nil, err
	}

	if err := st.Params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if st.Admin.IsZero() || st.ContractAddr.IsZero() {
		return nil, fmt.Errorf("%w: zero address", ErrInvalidState)
	}
	registry, err := split.DeserializeRegistry(st.Registry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	minted := make(map[wallet.Address]uint64, len(st.Minted))
	for addr, n := range st.Minted {
		minted[addr] = n
	}

	c := &Controller{
		params:        st.Params,
		admin:         st.Admin,
		contractAddr:  st.ContractAddr,
		mintPaused:    st.MintPaused,
		devMintLocked: st.DevMintLocked,
		minted:        minted,
		ledger:        ledger.NewFromOwners(st.Owners),
		bank:          funds.NewBankFromBalances(st.Balances),
		registry:      registry,
		store:         store,
	}
	c.resolver = metadata.NewResolver(c.ledger)
	if st.BaseURI != "" {
		if err := c.resolver.SetBaseURI(st.BaseURI); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
		}
	}
	if st.PlaceholderURI != "" {
		if err := c.resolver.SetPlaceholderURI(st.PlaceholderURI); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
		}
	}
	if st.Revealed {
		c.resolver.Reveal()
	}
	return c, nil
}

// MemStore is an in-memory Store for testing.
type MemStore struct {
	saved *State
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Save keeps a copy of the snapshot.
func (s *MemStore) Save(st *State) error {
	s.saved = copyState(st)
	return nil
}

// Load returns a copy of the last saved snapshot.
func (s *MemStore) Load() (*State, error) {
	if s.saved == nil {
		return nil, ErrStateNotFound
	}
	return copyState(s.saved), nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }

func copyState(st *State) *State {
	cpy := *st
	cpy.Minted = make(map[wallet.Address]uint64, len(st.Minted))
	for addr, n := range st.Minted {
		cpy.Minted[addr] = n
	}
	cpy.Owners = make(map[uint64]wallet.Address, len(st.Owners))
	for id, owner := range st.Owners {
		cpy.Owners[id] = owner
	}
	cpy.Balances = make(map[wallet.Address]uint64, len(st.Balances))
	for addr, bal := range st.Balances {
		cpy.Balances[addr] = bal
	}
	cpy.Registry = append([]byte(nil), st.Registry...)
	return &cpy
}
