package wallet

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Input references an unspent output by hash and the address index of the
// key that owns it.
type Input struct {
	Hash  string
	Index uint32
}

// Output pays Coin and Hour to Address. A non-nil AddressIndex marks change
// returning to this wallet.
type Output struct {
	Address      string
	Coin         uint64
	Hour         uint64
	AddressIndex *uint32
}

// IsChange reports whether the output returns to this wallet.
func (o Output) IsChange() bool {
	return o.AddressIndex != nil
}

// Transaction is an unsigned transaction.
type Transaction struct {
	Inputs  []Input
	Outputs []Output
}

// ConfirmFunc asks the user to approve one outgoing output. A non-nil error
// aborts signing.
type ConfirmFunc func(out Output) error

// CheckBounds validates input and output counts.
func CheckBounds(inputs, outputs int) error {
	switch {
	case inputs == 0:
		return ErrNoInputs
	case inputs > MaxInputs:
		return ErrTooManyInputs
	case outputs == 0:
		return ErrNoOutputs
	case outputs > MaxOutputs:
		return ErrTooManyOutputs
	}
	return nil
}

// SignTransaction validates tx, confirms every non-change output and returns
// one signature per input. Nothing is signed unless every output is confirmed.
func (w *Wallet) SignTransaction(seed []byte, tx *Transaction, confirm ConfirmFunc) ([]string, error) {
	if err := CheckBounds(len(tx.Inputs), len(tx.Outputs)); err != nil {
		return nil, err
	}

	hashes := make([][]byte, len(tx.Inputs))
	for i, in := range tx.Inputs {
		h, err := hex.DecodeString(in.Hash)
		if err != nil || len(h) != sha256.Size {
			return nil, fmt.Errorf("input %d: %w", i, ErrInvalidInputHash)
		}
		hashes[i] = h
	}

	for i, out := range tx.Outputs {
		if _, err := ParseAddress(out.Address); err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		if !out.IsChange() {
			continue
		}
		addr, err := w.DeriveAddress(seed, IndexPath(*out.AddressIndex))
		if err != nil {
			return nil, err
		}
		if addr != out.Address {
			return nil, ErrWrongReturnAddress
		}
	}

	for _, out := range tx.Outputs {
		if out.IsChange() {
			continue
		}
		if err := confirm(out); err != nil {
			return nil, err
		}
	}

	inner := innerHash(hashes, tx.Outputs)
	sigs := make([]string, len(tx.Inputs))
	for i, in := range tx.Inputs {
		digest := sha256.Sum256(append(inner[:], hashes[i]...))
		sig, err := w.signDigest(seed, IndexPath(in.Index), digest[:])
		if err != nil {
			return nil, err
		}
		sigs[i] = hex.EncodeToString(sig)
	}
	return sigs, nil
}

// innerHash commits to every input hash and every output. Addresses were
// validated by the caller.
func innerHash(inputs [][]byte, outputs []Output) [sha256.Size]byte {
	h := sha256.New()
	for _, in := range inputs {
		h.Write(in)
	}
	var buf [8]byte
	for _, out := range outputs {
		addr, _ := ParseAddress(out.Address)
		h.Write(addr)
		binary.LittleEndian.PutUint64(buf[:], out.Coin)
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], out.Hour)
		h.Write(buf[:])
	}
	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
