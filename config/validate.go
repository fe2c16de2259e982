package config

// validNetworks lists the accepted network names.
var validNetworks = map[string]bool{
	"mainnet": true,
	"testnet": true,
	"regtest": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if !validNetworks[cfg.Network] {
		return ErrInvalidNetwork
	}

	if cfg.MaxSupply == 0 {
		return ErrInvalidSupply
	}

	if cfg.MaxPublicMint == 0 || cfg.MaxPublicMint > cfg.MaxSupply {
		return ErrInvalidWalletCap
	}

	if cfg.UnitPrice == 0 {
		return ErrInvalidPrice
	}

	return nil
}
