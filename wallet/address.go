package wallet

import (
	"encoding/hex"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	script "github.com/bsv-blockchain/go-sdk/script"
)

// AddressSize is the length of an address in bytes (HASH160 output).
const AddressSize = 20

// Address identifies a participant: HASH160(compressed pubkey) =
// RIPEMD160(SHA256(pubkey)). The zero value is never a valid participant
// and is used as the "no address" sentinel.
type Address [AddressSize]byte

// ZeroAddress is the empty address sentinel.
var ZeroAddress Address

// AddressFromPublicKey derives the address of a public key.
func AddressFromPublicKey(pub *ec.PublicKey) (Address, error) {
	if pub == nil {
		return ZeroAddress, fmt.Errorf("%w: nil public key", ErrInvalidAddress)
	}
	var addr Address
	copy(addr[:], bsvhash.Hash160(pub.Compressed()))
	return addr, nil
}

// AddressFromBytes converts a 20-byte slice into an Address.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != AddressSize {
		return ZeroAddress, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAddress, AddressSize, len(b))
	}
	var addr Address
	copy(addr[:], b)
	return addr, nil
}

// AddressFromHex parses a 40-character hex string into an Address.
func AddressFromHex(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ZeroAddress, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return AddressFromBytes(b)
}

// String returns the hex encoding of the address hash.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether the address is the empty sentinel.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Encode returns the base58check string form of the address for the given
// network (mainnet or any test network).
func (a Address) Encode(network *NetworkConfig) (string, error) {
	mainnet := network == nil || network.Name == "mainnet"
	addr, err := script.NewAddressFromPublicKeyHash(a[:], mainnet)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return addr.AddressString, nil
}
