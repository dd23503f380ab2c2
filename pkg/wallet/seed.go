package wallet

import (
	"crypto/sha512"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

const (
	seedIterations = 2048
	seedSize       = 64
)

// MnemonicToSeed stretches a BIP-39 mnemonic and optional passphrase into a
// 64-byte seed. Both inputs are NFKD normalised. The mnemonic is not checked
// against a wordlist.
func (w *Wallet) MnemonicToSeed(mnemonic, passphrase string) ([]byte, error) {
	m := strings.Join(strings.Fields(mnemonic), " ")
	if m == "" {
		return nil, ErrNoMnemonic
	}
	password := norm.NFKD.Bytes([]byte(m))
	salt := norm.NFKD.Bytes([]byte("mnemonic" + passphrase))
	return pbkdf2.Key(password, salt, seedIterations, seedSize, sha512.New), nil
}
