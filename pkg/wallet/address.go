package wallet

import (
	"bytes"
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/ripemd160"
)

const (
	addressVersion  = 0x00
	addressHashSize = 20
	addressSize     = addressHashSize + 1 + 4
)

// AddressFromPubKey encodes a compressed public key as an address.
func AddressFromPubKey(pub []byte) string {
	h1 := sha256.Sum256(pub)
	h2 := sha256.Sum256(h1[:])
	r := ripemd160.New()
	r.Write(h2[:])

	raw := make([]byte, 0, addressSize)
	raw = r.Sum(raw)
	raw = append(raw, addressVersion)
	sum := sha256.Sum256(raw)
	raw = append(raw, sum[:4]...)
	return base58.Encode(raw)
}

// ParseAddress decodes addr and verifies its version and checksum. It returns
// the 21-byte hash and version.
func ParseAddress(addr string) ([]byte, error) {
	raw := base58.Decode(addr)
	if len(raw) != addressSize {
		return nil, ErrInvalidAddress
	}
	body := raw[:addressHashSize+1]
	if body[addressHashSize] != addressVersion {
		return nil, ErrInvalidAddress
	}
	sum := sha256.Sum256(body)
	if !bytes.Equal(sum[:4], raw[addressHashSize+1:]) {
		return nil, ErrInvalidAddress
	}
	return body, nil
}
