// Package pinmatrix implements the scrambled PIN entry matrix.
//
// The device shows digits 1-9 in a random 3x3 arrangement; the host only
// sees a blank keypad and reports the positions the user clicked. Positions
// use numeric keypad numbering:
//
//	7 8 9
//	4 5 6
//	1 2 3
//
// so the host never learns the PIN digits.
package pinmatrix

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// MaxLength is the longest PIN accepted.
const MaxLength = 9

// invalidDigit replaces positions outside 1-9. It never matches a stored PIN.
const invalidDigit = 'X'

// ErrShortRead indicates the random source failed during shuffling.
var ErrShortRead = errors.New("pinmatrix: random source failed")

// Matrix is one scrambled keypad. perm[k] is the digit shown at position k+1.
type Matrix struct {
	perm [9]byte
}

// Start shuffles a new matrix using r, or crypto/rand when r is nil.
func Start(r io.Reader) (*Matrix, error) {
	if r == nil {
		r = rand.Reader
	}
	m := &Matrix{}
	for i := range m.perm {
		m.perm[i] = byte('1' + i)
	}
	// Fisher-Yates.
	for i := len(m.perm) - 1; i > 0; i-- {
		j, err := rand.Int(r, big.NewInt(int64(i+1)))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrShortRead, err)
		}
		k := j.Int64()
		m.perm[i], m.perm[k] = m.perm[k], m.perm[i]
	}
	return m, nil
}

// Identity returns an unscrambled matrix where every position shows its own
// number. Used by the debug link and tests.
func Identity() *Matrix {
	m := &Matrix{}
	for i := range m.perm {
		m.perm[i] = byte('1' + i)
	}
	return m
}

// Decode converts clicked positions to PIN digits. ok is false for empty
// input, which callers treat as cancellation. Positions outside 1-9 and
// input longer than MaxLength decode to a value that cannot match any PIN.
func (m *Matrix) Decode(positions string) (pin string, ok bool) {
	if positions == "" {
		return "", false
	}
	if len(positions) > MaxLength {
		return strings.Repeat(string(invalidDigit), MaxLength+1), true
	}
	out := make([]byte, len(positions))
	for i := 0; i < len(positions); i++ {
		k := int(positions[i]) - '1'
		if k < 0 || k > 8 {
			out[i] = invalidDigit
			continue
		}
		out[i] = m.perm[k]
	}
	return string(out), true
}

// Encode converts digits to the positions a host would click. It is the
// inverse of Decode and exists for the debug link and tests.
func (m *Matrix) Encode(pin string) string {
	out := make([]byte, 0, len(pin))
	for i := 0; i < len(pin); i++ {
		for k, d := range m.perm {
			if d == pin[i] {
				out = append(out, byte('1'+k))
				break
			}
		}
	}
	return string(out)
}

// Layout renders the grid top row first, as drawn on the device.
func (m *Matrix) Layout() string {
	rows := [3][3]int{{6, 7, 8}, {3, 4, 5}, {0, 1, 2}}
	var b strings.Builder
	for r, row := range rows {
		for c, k := range row {
			b.WriteByte(m.perm[k])
			if c < 2 {
				b.WriteByte(' ')
			}
		}
		if r < 2 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
