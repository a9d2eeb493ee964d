package wallet

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/ruteri/paper-custody-kit/interfaces"
	"github.com/tyler-smith/go-bip39"
)

// Derived holds the freshly generated secret and the public artifacts derived from it.
type Derived struct {
	Secret    interfaces.Secret
	Address   string
	PublicKey string
	Path      DerivationPath
}

// Deriver generates BIP-39 secrets and derives the wallet address from them.
type Deriver struct {
	cfg     Config
	path    DerivationPath
	entropy io.Reader
}

// NewDeriver validates cfg and returns a deriver reading entropy from crypto/rand.
func NewDeriver(cfg Config) (*Deriver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	path, err := cfg.Path()
	if err != nil {
		return nil, err
	}
	return &Deriver{cfg: cfg, path: path, entropy: rand.Reader}, nil
}

// WithEntropySource replaces the randomness source. Tests use it to make
// generation deterministic.
func (d *Deriver) WithEntropySource(r io.Reader) *Deriver {
	d.entropy = r
	return d
}

// Path returns the derivation path used for the address.
func (d *Deriver) Path() DerivationPath {
	return d.path
}

// Derive generates a new secret of the configured length and derives its address.
func (d *Deriver) Derive() (*Derived, error) {
	bits, err := entropyBits(d.cfg.WordCount)
	if err != nil {
		return nil, err
	}

	entropy := make([]byte, bits/8)
	defer wipeBytes(entropy)
	if _, err := io.ReadFull(d.entropy, entropy); err != nil {
		return nil, fmt.Errorf("%w: failed to read entropy: %v", interfaces.ErrDerivation, err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build mnemonic: %v", interfaces.ErrDerivation, err)
	}
	return d.DeriveFromMnemonic(mnemonic)
}

// DeriveFromMnemonic derives the address of an existing mnemonic. The same
// mnemonic always yields the same address.
func (d *Deriver) DeriveFromMnemonic(mnemonic string) (*Derived, error) {
	words := strings.Fields(mnemonic)
	if len(words) != d.cfg.WordCount {
		return nil, fmt.Errorf("%w: mnemonic has %d words, expected %d", interfaces.ErrDerivation, len(words), d.cfg.WordCount)
	}

	seed, err := bip39.NewSeedWithErrorChecking(strings.Join(words, " "), "")
	if err != nil {
		return nil, fmt.Errorf("%w: invalid mnemonic: %v", interfaces.ErrDerivation, err)
	}
	defer wipeBytes(seed)

	params := d.cfg.Params()
	master, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create master key: %v", interfaces.ErrDerivation, err)
	}
	defer master.Zero()

	key := master
	for _, idx := range d.path {
		child, err := key.Derive(idx)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to derive %s: %v", interfaces.ErrDerivation, d.path, err)
		}
		if key != master {
			key.Zero()
		}
		key = child
	}
	defer key.Zero()

	pubKey, err := key.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get public key: %v", interfaces.ErrDerivation, err)
	}
	compressed := pubKey.SerializeCompressed()

	address, err := encodeAddress(d.cfg.AddressType, btcutil.Hash160(compressed), params)
	if err != nil {
		return nil, err
	}

	return &Derived{
		Secret:    interfaces.Secret(words),
		Address:   address,
		PublicKey: hex.EncodeToString(compressed),
		Path:      d.path,
	}, nil
}

func encodeAddress(t AddressType, pkHash []byte, params *chaincfg.Params) (string, error) {
	var addr btcutil.Address
	var err error

	switch t {
	case AddressP2PKH:
		addr, err = btcutil.NewAddressPubKeyHash(pkHash, params)
	case AddressP2WPKH:
		addr, err = btcutil.NewAddressWitnessPubKeyHash(pkHash, params)
	case AddressP2SHP2WPKH:
		var witness *btcutil.AddressWitnessPubKeyHash
		witness, err = btcutil.NewAddressWitnessPubKeyHash(pkHash, params)
		if err != nil {
			break
		}
		var script []byte
		script, err = txscript.PayToAddrScript(witness)
		if err != nil {
			break
		}
		addr, err = btcutil.NewAddressScriptHash(script, params)
	default:
		_, err = t.Purpose()
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode %s address: %v", interfaces.ErrDerivation, t, err)
	}
	return addr.EncodeAddress(), nil
}

// Securely wipe data from memory
func wipeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
