// Package config handles operator configuration for a capmint deployment:
// the data directory, target network, series parameters, and metadata URIs.
//
// Configuration lives in a plain key=value file so operators can edit it
// by hand. Blank lines and lines starting with '#' are ignored; unknown
// keys are skipped so newer files still load on older binaries.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all operator-tunable settings.
type Config struct {
	// DataDir is the directory holding the contract state database.
	DataDir string

	// Network selects the address encoding: mainnet, testnet, or regtest.
	Network string

	// MaxSupply is the series cap (total tokens that can ever exist).
	MaxSupply uint64

	// MaxPublicMint is the lifetime per-wallet public mint cap.
	MaxPublicMint uint64

	// UnitPrice is the price of one token in satoshis.
	UnitPrice uint64

	// BaseURI is the metadata root used for revealed tokens. May be
	// empty at startup and set later through the admin interface.
	BaseURI string

	// PlaceholderURI is the metadata URI served before reveal. May be
	// empty at startup and set later through the admin interface.
	PlaceholderURI string
}

// DefaultDataDir returns the default data directory, ~/.capmint on most
// systems. It falls back to a relative path if the home directory cannot
// be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".capmint"
	}
	return filepath.Join(home, ".capmint")
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() Config {
	return Config{
		DataDir:       DefaultDataDir(),
		Network:       "mainnet",
		MaxSupply:     10000,
		MaxPublicMint: 20,
		UnitPrice:     1000000,
	}
}

// ConfigPath returns the path of the config file within dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// LoadConfig reads a config file and returns the parsed Config. Keys not
// present in the file keep their default values. ErrConfigNotFound is
// returned if the file does not exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, err := parseKeyValue(line)
		if err != nil {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNum, line)
		}
		if err := applyKey(&cfg, key, value); err != nil {
			return cfg, fmt.Errorf("%w: line %d", err, lineNum)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read: %w", err)
	}

	return cfg, nil
}

// parseKeyValue splits a config line on the first '=' and trims
// whitespace around both parts.
func parseKeyValue(line string) (key, value string, err error) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", ErrInvalidConfigLine
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	if key == "" {
		return "", "", ErrInvalidConfigLine
	}
	return key, value, nil
}

// applyKey sets one parsed key on cfg. Unknown keys are ignored.
func applyKey(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "datadir":
		cfg.DataDir = value
	case "network":
		cfg.Network = value
	case "maxsupply":
		return applyUint(&cfg.MaxSupply, key, value)
	case "maxpublicmint":
		return applyUint(&cfg.MaxPublicMint, key, value)
	case "unitprice":
		return applyUint(&cfg.UnitPrice, key, value)
	case "baseuri":
		cfg.BaseURI = value
	case "placeholderuri":
		cfg.PlaceholderURI = value
	}
	return nil
}

// applyUint parses value as an unsigned integer into dst.
func applyUint(dst *uint64, key, value string) error {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
	}
	*dst = n
	return nil
}

// SaveConfig writes cfg to path in key=value form, creating parent
// directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# capmint configuration\n")
	b.WriteString("# Edit values below and restart to apply.\n\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network = %s\n", cfg.Network)
	fmt.Fprintf(&b, "maxsupply = %d\n", cfg.MaxSupply)
	fmt.Fprintf(&b, "maxpublicmint = %d\n", cfg.MaxPublicMint)
	fmt.Fprintf(&b, "unitprice = %d\n", cfg.UnitPrice)
	fmt.Fprintf(&b, "baseuri = %s\n", cfg.BaseURI)
	fmt.Fprintf(&b, "placeholderuri = %s\n", cfg.PlaceholderURI)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}
