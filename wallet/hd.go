package wallet

import (
	"fmt"

	bip32 "github.com/bsv-blockchain/go-sdk/compat/bip32"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	chaincfg "github.com/bsv-blockchain/go-sdk/transaction/chaincfg"
)

const (
	// BIP44 path constants.
	PurposeBIP44    = 44
	CoinTypeSeries  = 718
	OperatorAccount = 0
	BuyerAccount    = 1

	// Chain indices.
	ExternalChain = 0 // Receive addresses
	InternalChain = 1 // Change addresses

	// MaxBuyerIndex is the largest non-hardened BIP32 child index.
	MaxBuyerIndex = 1<<31 - 1

	// Hardened is the BIP32 hardened derivation offset.
	Hardened = 0x80000000
)

// Wallet is an HD wallet for contract participants.
//
// The operator (administrative) key lives at m/44'/718'/0'/0/0; buyer keys
// are derived under account 1 at m/44'/718'/1'/0/{index}.
type Wallet struct {
	masterKey *bip32.ExtendedKey
	network   *NetworkConfig
}

// KeyPair holds a derived public/private key pair.
type KeyPair struct {
	PrivateKey *ec.PrivateKey `json:"-"`
	PublicKey  *ec.PublicKey  `json:"public_key"`
	Path       string         `json:"path"` // Human-readable derivation path
}

// Address returns the address of the key pair's public key.
func (kp *KeyPair) Address() (Address, error) {
	return AddressFromPublicKey(kp.PublicKey)
}

// NewWallet creates a new Wallet from a BIP39 seed.
func NewWallet(seed []byte, network *NetworkConfig) (*Wallet, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	if network == nil {
		network = &MainNet
	}

	// Map our NetworkConfig to go-sdk chaincfg.Params for BIP32.
	var net *chaincfg.Params
	switch network.Name {
	case "mainnet":
		net = &chaincfg.MainNet
	default:
		net = &chaincfg.TestNet
	}

	masterKey, err := bip32.NewMaster(seed, net)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}

	return &Wallet{
		masterKey: masterKey,
		network:   network,
	}, nil
}

// Network returns the wallet's network configuration.
func (w *Wallet) Network() *NetworkConfig {
	return w.network
}

// deriveAccount derives the account-level key: m/44'/718'/account'
func (w *Wallet) deriveAccount(account uint32) (*bip32.ExtendedKey, error) {
	purpose, err := w.masterKey.Child(PurposeBIP44 + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: purpose derivation: %w", ErrDerivationFailed, err)
	}

	coinType, err := purpose.Child(CoinTypeSeries + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: coin type derivation: %w", ErrDerivationFailed, err)
	}

	accountKey, err := coinType.Child(account + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: account derivation: %w", ErrDerivationFailed, err)
	}

	return accountKey, nil
}

// DeriveOperatorKey derives the operator key pair holding the administrative
// capability.
//
//	Path: m/44'/718'/0'/0/0
func (w *Wallet) DeriveOperatorKey() (*KeyPair, error) {
	return w.deriveLeaf(OperatorAccount, ExternalChain, 0)
}

// DeriveBuyerKey derives a buyer key pair by index.
//
//	Path: m/44'/718'/1'/0/{index}
func (w *Wallet) DeriveBuyerKey(index uint32) (*KeyPair, error) {
	if index > MaxBuyerIndex {
		return nil, ErrBuyerIndexOutOfRange
	}
	return w.deriveLeaf(BuyerAccount, ExternalChain, index)
}

// deriveLeaf derives m/44'/718'/account'/chain/index.
func (w *Wallet) deriveLeaf(account, chain, index uint32) (*KeyPair, error) {
	accountKey, err := w.deriveAccount(account)
	if err != nil {
		return nil, err
	}

	chainKey, err := accountKey.Child(chain)
	if err != nil {
		return nil, fmt.Errorf("%w: chain derivation: %w", ErrDerivationFailed, err)
	}

	childKey, err := chainKey.Child(index)
	if err != nil {
		return nil, fmt.Errorf("%w: index derivation: %w", ErrDerivationFailed, err)
	}

	return extKeyToKeyPair(childKey, fmt.Sprintf("m/44'/%d'/%d'/%d/%d", CoinTypeSeries, account, chain, index))
}

// extKeyToKeyPair converts a BIP32 extended key to a KeyPair.
func extKeyToKeyPair(extKey *bip32.ExtendedKey, path string) (*KeyPair, error) {
	privKey, err := extKey.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to extract EC private key: %w", ErrDerivationFailed, err)
	}

	pubKey := privKey.PubKey()
	if pubKey == nil {
		return nil, fmt.Errorf("%w: failed to derive public key", ErrDerivationFailed)
	}

	return &KeyPair{
		PrivateKey: privKey,
		PublicKey:  pubKey,
		Path:       path,
	}, nil
}
