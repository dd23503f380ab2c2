package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

const (
	signatureSize = 65

	// Compact signatures from ecdsa.SignCompact start with 27 + recovery id,
	// plus 4 when the key is compressed.
	compactMagic      = 27
	compactCompressed = 4
)

// SignMessage signs sha256(message) with the key at path.
func (w *Wallet) SignMessage(seed []byte, path Path, message string) (string, error) {
	digest := sha256.Sum256([]byte(message))
	sig, err := w.signDigest(seed, path, digest[:])
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sig), nil
}

func (w *Wallet) signDigest(seed []byte, path Path, digest []byte) ([]byte, error) {
	key, err := w.deriveKey(seed, path)
	if err != nil {
		return nil, err
	}
	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	defer priv.Zero()
	return signCompact(priv, digest), nil
}

// signCompact returns r || s || recid.
func signCompact(priv *btcec.PrivateKey, digest []byte) []byte {
	compact := ecdsa.SignCompact(priv, digest, true)
	sig := make([]byte, signatureSize)
	copy(sig, compact[1:])
	sig[64] = compact[0] - compactMagic - compactCompressed
	return sig
}

// VerifySignature checks that signature over sha256(message) was produced by
// the key behind address.
func (w *Wallet) VerifySignature(address, message, signature string) error {
	if _, err := ParseAddress(address); err != nil {
		return err
	}
	sig, err := hex.DecodeString(signature)
	if err != nil || len(sig) != signatureSize || sig[64] > 3 {
		return ErrInvalidSignature
	}
	compact := make([]byte, signatureSize)
	compact[0] = compactMagic + compactCompressed + sig[64]
	copy(compact[1:], sig[:64])

	digest := sha256.Sum256([]byte(message))
	pub, _, err := ecdsa.RecoverCompact(compact, digest[:])
	if err != nil {
		return ErrInvalidSignature
	}
	if AddressFromPubKey(pub.SerializeCompressed()) != address {
		return ErrInvalidSignature
	}
	return nil
}
