package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"mainnet\", \"testnet\", or \"regtest\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidSupply indicates the series cap is zero.
	ErrInvalidSupply = errors.New("config: max supply must be greater than zero")

	// ErrInvalidWalletCap indicates the per-wallet mint cap is zero or
	// exceeds the series cap.
	ErrInvalidWalletCap = errors.New("config: max public mint must be between 1 and max supply")

	// ErrInvalidPrice indicates the unit price is zero.
	ErrInvalidPrice = errors.New("config: unit price must be greater than zero")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")

	// ErrInvalidValue indicates a numeric config value could not be parsed.
	ErrInvalidValue = errors.New("config: invalid numeric value")
)
