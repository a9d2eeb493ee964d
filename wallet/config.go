// Package wallet generates BIP-39 secrets and derives the Bitcoin address
// printed on the custody kit.
package wallet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ruteri/paper-custody-kit/interfaces"
)

// AddressType selects the script the derived key is encoded into.
type AddressType string

const (
	AddressP2PKH      AddressType = "p2pkh"
	AddressP2SHP2WPKH AddressType = "p2sh-p2wpkh"
	AddressP2WPKH     AddressType = "p2wpkh"
)

// AddressTypes lists the supported types in flag help order.
var AddressTypes = []AddressType{AddressP2WPKH, AddressP2SHP2WPKH, AddressP2PKH}

// Purpose returns the BIP-43 purpose level that wallets use for the type
// (BIP-44, BIP-49 and BIP-84).
func (t AddressType) Purpose() (uint32, error) {
	switch t {
	case AddressP2PKH:
		return 44, nil
	case AddressP2SHP2WPKH:
		return 49, nil
	case AddressP2WPKH:
		return 84, nil
	default:
		return 0, fmt.Errorf("%w: unsupported address type %q", interfaces.ErrConfig, string(t))
	}
}

// DerivationPath is a BIP-32 path below the master key. Hardened indexes
// include hdkeychain.HardenedKeyStart.
type DerivationPath []uint32

// ParseDerivationPath parses paths such as m/84'/0'/0'/0/0. Hardened levels
// may be marked with ', h or H.
func ParseDerivationPath(s string) (DerivationPath, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) < 2 || parts[0] != "m" {
		return nil, fmt.Errorf("%w: derivation path %q must start with m/", interfaces.ErrConfig, s)
	}

	path := make(DerivationPath, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := false
		if trimmed := strings.TrimRight(part, "'hH"); trimmed != part {
			if len(part)-len(trimmed) != 1 {
				return nil, fmt.Errorf("%w: invalid derivation path level %q", interfaces.ErrConfig, part)
			}
			hardened = true
			part = trimmed
		}
		idx, err := strconv.ParseUint(part, 10, 32)
		if err != nil || idx >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf("%w: invalid derivation path level %q", interfaces.ErrConfig, part)
		}
		if hardened {
			idx += hdkeychain.HardenedKeyStart
		}
		path = append(path, uint32(idx))
	}
	return path, nil
}

func (p DerivationPath) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, idx := range p {
		sb.WriteString("/")
		if idx >= hdkeychain.HardenedKeyStart {
			sb.WriteString(strconv.FormatUint(uint64(idx-hdkeychain.HardenedKeyStart), 10))
			sb.WriteString("'")
		} else {
			sb.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return sb.String()
}

// Config describes which secret and address the deriver produces.
type Config struct {
	// WordCount is the mnemonic length: 12, 15, 18, 21 or 24.
	WordCount int

	AddressType AddressType
	Testnet     bool

	// DerivationPath overrides the path implied by AddressType and network.
	DerivationPath string

	// AllowPathMismatch accepts a path whose purpose or coin type does not
	// match AddressType and network.
	AllowPathMismatch bool
}

// DefaultConfig derives a 24 word secret and a native segwit mainnet address.
func DefaultConfig() Config {
	return Config{
		WordCount:   24,
		AddressType: AddressP2WPKH,
	}
}

// Params returns the network parameters addresses are encoded for.
func (c Config) Params() *chaincfg.Params {
	if c.Testnet {
		return &chaincfg.TestNet3Params
	}
	return &chaincfg.MainNetParams
}

func (c Config) coinType() uint32 {
	if c.Testnet {
		return 1
	}
	return 0
}

// DefaultPath returns m/purpose'/coin'/0'/0/0 for the configured type and network.
func (c Config) DefaultPath() (DerivationPath, error) {
	purpose, err := c.AddressType.Purpose()
	if err != nil {
		return nil, err
	}
	h := uint32(hdkeychain.HardenedKeyStart)
	return DerivationPath{purpose + h, c.coinType() + h, h, 0, 0}, nil
}

// Path returns the configured path, or the default one when none is set.
func (c Config) Path() (DerivationPath, error) {
	if c.DerivationPath == "" {
		return c.DefaultPath()
	}
	return ParseDerivationPath(c.DerivationPath)
}

// Validate checks the word count and that the derivation path agrees with the
// address type and network.
func (c Config) Validate() error {
	if _, err := entropyBits(c.WordCount); err != nil {
		return err
	}

	purpose, err := c.AddressType.Purpose()
	if err != nil {
		return err
	}

	path, err := c.Path()
	if err != nil {
		return err
	}
	if c.AllowPathMismatch {
		return nil
	}

	h := uint32(hdkeychain.HardenedKeyStart)
	if len(path) < 2 {
		return fmt.Errorf("%w: derivation path %s is too short to carry purpose and coin type", interfaces.ErrConfig, path)
	}
	if path[0] != purpose+h {
		return fmt.Errorf("%w: derivation path %s does not match address type %s (expected purpose %d')",
			interfaces.ErrConfig, path, c.AddressType, purpose)
	}
	if path[1] != c.coinType()+h {
		return fmt.Errorf("%w: derivation path %s does not match network %s (expected coin type %d')",
			interfaces.ErrConfig, path, c.Params().Name, c.coinType())
	}
	return nil
}

func entropyBits(words int) (int, error) {
	switch words {
	case 12, 15, 18, 21, 24:
		return words * 32 / 3, nil
	default:
		return 0, fmt.Errorf("%w: unsupported mnemonic word count %d (use 12, 15, 18, 21 or 24)", interfaces.ErrConfig, words)
	}
}
