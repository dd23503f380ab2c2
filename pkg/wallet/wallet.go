// Package wallet implements the key derivation and signing service.
//
// Keys follow BIP-39 (mnemonic to seed) and BIP-32/44 (hierarchical
// derivation, coin type 8000). Addresses and signatures use the Skycoin
// encodings: an address is base58(ripemd160(sha256(sha256(pubkey))) ||
// version || checksum) and a signature is the 65-byte r || s || recovery id,
// hex encoded.
package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/skyguard-wallet/skyguard-go/pkg/errcode"
)

// Derivation constants.
const (
	Purpose  uint32 = 44
	CoinType uint32 = 8000

	// IndexLimit bounds every path component. Values at or above it would
	// flip the hardened bit.
	IndexLimit uint32 = hdkeychain.HardenedKeyStart
)

// Transaction limits.
const (
	MaxInputs  = 8
	MaxOutputs = 8
)

// Wallet errors. Each wraps the errcode the dispatcher reports for it.
var (
	ErrNoMnemonic         = fmt.Errorf("wallet: mnemonic not set: %w", errcode.MnemonicRequired)
	ErrKeyDerivation      = fmt.Errorf("wallet: key pair generation failed: %w", errcode.AddressGeneration)
	ErrInvalidAddress     = fmt.Errorf("wallet: invalid address: %w", errcode.InvalidValue)
	ErrInvalidSignature   = fmt.Errorf("wallet: wrong signature: %w", errcode.InvalidSignature)
	ErrWrongReturnAddress = fmt.Errorf("wallet: wrong return address: %w", errcode.AddressGeneration)
	ErrTooManyInputs      = fmt.Errorf("wallet: too many inputs: %w", errcode.TooManyInputs)
	ErrTooManyOutputs     = fmt.Errorf("wallet: too many outputs: %w", errcode.TooManyOutputs)
	ErrNoInputs           = fmt.Errorf("wallet: transaction has no inputs: %w", errcode.InvalidArg)
	ErrNoOutputs          = fmt.Errorf("wallet: transaction has no outputs: %w", errcode.InvalidArg)
	ErrInvalidInputHash   = fmt.Errorf("wallet: invalid input hash: %w", errcode.InvalidArg)
	ErrHardenedIndex      = fmt.Errorf("wallet: path component out of range: %w", errcode.AddressGeneration)
)

// Path is a BIP-44 derivation path. Purpose, CoinType and Account are
// hardened during derivation.
type Path struct {
	Purpose  uint32
	CoinType uint32
	Account  uint32
	Change   uint32
	Index    uint32
}

// IndexPath returns the default path for an address index: m/44'/8000'/0'/0/index.
func IndexPath(index uint32) Path {
	return Path{Purpose: Purpose, CoinType: CoinType, Index: index}
}

// String formats the path in BIP-32 notation.
func (p Path) String() string {
	return fmt.Sprintf("m/%d'/%d'/%d'/%d/%d", p.Purpose, p.CoinType, p.Account, p.Change, p.Index)
}

// Signer is the signing and derivation service used by the dispatcher.
type Signer interface {
	MnemonicToSeed(mnemonic, passphrase string) ([]byte, error)
	DeriveAddress(seed []byte, path Path) (string, error)
	SignMessage(seed []byte, path Path, message string) (string, error)
	VerifySignature(address, message, signature string) error
	SignTransaction(seed []byte, tx *Transaction, confirm ConfirmFunc) ([]string, error)
}

// Wallet is the Signer implementation.
type Wallet struct {
	net *chaincfg.Params
}

var _ Signer = (*Wallet)(nil)

// New returns a Wallet deriving mainnet master keys.
func New() *Wallet {
	return &Wallet{net: &chaincfg.MainNetParams}
}

func (w *Wallet) deriveKey(seed []byte, p Path) (*hdkeychain.ExtendedKey, error) {
	for _, c := range []uint32{p.Purpose, p.CoinType, p.Account, p.Change, p.Index} {
		if c >= IndexLimit {
			return nil, ErrHardenedIndex
		}
	}
	key, err := hdkeychain.NewMaster(seed, w.net)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	steps := []uint32{
		hdkeychain.HardenedKeyStart + p.Purpose,
		hdkeychain.HardenedKeyStart + p.CoinType,
		hdkeychain.HardenedKeyStart + p.Account,
		p.Change,
		p.Index,
	}
	for _, i := range steps {
		key, err = key.Derive(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
		}
	}
	return key, nil
}

// DeriveAddress returns the address of the key at path.
func (w *Wallet) DeriveAddress(seed []byte, path Path) (string, error) {
	key, err := w.deriveKey(seed, path)
	if err != nil {
		return "", err
	}
	pub, err := key.ECPubKey()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	return AddressFromPubKey(pub.SerializeCompressed()), nil
}
