// Package wallet implements HD key and address management for contract
// participants using BIP32/BIP39.
//
// Key hierarchy: m/44'/718'/{account}'/{chain}/{index}
// where account 0 holds the operator (administrative) key and account 1
// holds buyer keys. Addresses are 20-byte HASH160 digests of compressed
// public keys.
package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/compat/bip39"
	"golang.org/x/crypto/argon2"
)

// Mnemonic entropy sizes accepted by GenerateMnemonic.
const (
	Mnemonic12Words = 128 // 12-word mnemonic
	Mnemonic24Words = 256 // 24-word mnemonic
)

// Sealed-seed layout: salt(16) || nonce(12) || GCM(seed || check(4)).
// The key is Argon2id(password, salt); the check is SHA256(seed)[:4] and
// confirms the right seed came back out.
const (
	sealSaltLen  = 16
	sealNonceLen = 12
	sealCheckLen = 4

	kdfTime    = 3
	kdfMemory  = 64 * 1024 // KiB
	kdfThreads = 4
	kdfKeyLen  = 32
)

// GenerateMnemonic creates a new BIP39 mnemonic with the given entropy
// bits: Mnemonic12Words (128) for 12 words, Mnemonic24Words (256) for 24.
func GenerateMnemonic(entropyBits int) (string, error) {
	if entropyBits != Mnemonic12Words && entropyBits != Mnemonic24Words {
		return "", ErrInvalidEntropy
	}

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("wallet: entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("wallet: mnemonic: %w", err)
	}

	return mnemonic, nil
}

// ValidateMnemonic checks if a mnemonic string is valid BIP39.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// SeedFromMnemonic derives the 64-byte BIP39 seed from mnemonic plus an
// optional passphrase. An empty passphrase still participates in the
// derivation.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	if !ValidateMnemonic(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("wallet: seed derivation: %w", err)
	}

	return seed, nil
}

// sealKey stretches the password into an AES-256 key with Argon2id.
func sealKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, kdfTime, kdfMemory, kdfThreads, kdfKeyLen)
}

// seedCheck returns the short digest stored alongside the sealed seed.
func seedCheck(seed []byte) []byte {
	sum := sha256.Sum256(seed)
	return sum[:sealCheckLen]
}

// sealGCM builds the AEAD for a derived key.
func sealGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// EncryptSeed seals the operator seed under a password. The output layout
// is documented with the seal constants above.
func EncryptSeed(seed []byte, password string) ([]byte, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}

	header := make([]byte, sealSaltLen+sealNonceLen)
	if _, err := rand.Read(header); err != nil {
		return nil, fmt.Errorf("wallet: seal randomness: %w", err)
	}
	salt := header[:sealSaltLen]
	nonce := header[sealSaltLen:]

	gcm, err := sealGCM(sealKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("wallet: seal cipher: %w", err)
	}

	plaintext := make([]byte, 0, len(seed)+sealCheckLen)
	plaintext = append(plaintext, seed...)
	plaintext = append(plaintext, seedCheck(seed)...)

	return gcm.Seal(header, nonce, plaintext, nil), nil
}

// DecryptSeed opens a seed sealed by EncryptSeed. A wrong password or
// corrupted data yields ErrDecryptionFailed; a decryption that succeeds
// but produces a seed with the wrong check yields ErrChecksumMismatch.
func DecryptSeed(sealed []byte, password string) ([]byte, error) {
	if len(sealed) < sealSaltLen+sealNonceLen+sealCheckLen {
		return nil, ErrDecryptionFailed
	}
	salt := sealed[:sealSaltLen]
	nonce := sealed[sealSaltLen : sealSaltLen+sealNonceLen]
	box := sealed[sealSaltLen+sealNonceLen:]

	gcm, err := sealGCM(sealKey(password, salt))
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	plaintext, err := gcm.Open(nil, nonce, box, nil)
	if err != nil || len(plaintext) < sealCheckLen {
		return nil, ErrDecryptionFailed
	}

	seed := plaintext[:len(plaintext)-sealCheckLen]
	check := plaintext[len(plaintext)-sealCheckLen:]
	if subtle.ConstantTimeCompare(check, seedCheck(seed)) != 1 {
		return nil, ErrChecksumMismatch
	}

	return seed, nil
}
