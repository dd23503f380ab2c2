package wallet

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyguard-wallet/skyguard-go/pkg/errcode"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func testSeed(t *testing.T) []byte {
	t.Helper()
	seed, err := New().MnemonicToSeed(testMnemonic, "")
	require.NoError(t, err)
	return seed
}

func TestMnemonicToSeed(t *testing.T) {
	w := New()

	t.Run("KnownVector", func(t *testing.T) {
		seed, err := w.MnemonicToSeed(testMnemonic, "TREZOR")
		require.NoError(t, err)
		want := "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04"
		assert.Equal(t, want, hex.EncodeToString(seed))
	})

	t.Run("PassphraseChangesSeed", func(t *testing.T) {
		a, _ := w.MnemonicToSeed(testMnemonic, "")
		b, _ := w.MnemonicToSeed(testMnemonic, "x")
		assert.NotEqual(t, a, b)
	})

	t.Run("WhitespaceNormalised", func(t *testing.T) {
		a, _ := w.MnemonicToSeed(testMnemonic, "")
		b, _ := w.MnemonicToSeed("  "+strings.ReplaceAll(testMnemonic, " ", "   ")+"\n", "")
		assert.Equal(t, a, b)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := w.MnemonicToSeed("   ", "")
		assert.ErrorIs(t, err, ErrNoMnemonic)
		assert.Equal(t, errcode.MnemonicRequired, errcode.From(err))
	})
}

func TestDeriveAddress(t *testing.T) {
	w := New()
	seed := testSeed(t)

	a0, err := w.DeriveAddress(seed, IndexPath(0))
	require.NoError(t, err)
	a0again, _ := w.DeriveAddress(seed, IndexPath(0))
	a1, _ := w.DeriveAddress(seed, IndexPath(1))

	assert.Equal(t, a0, a0again, "derivation must be deterministic")
	assert.NotEqual(t, a0, a1)

	_, err = ParseAddress(a0)
	assert.NoError(t, err, "derived address must parse")

	explicit, _ := w.DeriveAddress(seed, Path{Purpose: Purpose, CoinType: CoinType, Index: 1})
	assert.Equal(t, a1, explicit)

	other, _ := w.DeriveAddress(seed, Path{Purpose: Purpose, CoinType: CoinType, Account: 1, Index: 1})
	assert.NotEqual(t, a1, other)

	_, err = w.DeriveAddress(seed, IndexPath(1<<31))
	assert.ErrorIs(t, err, ErrHardenedIndex)
}

func TestDeriveAddressRejectsOutOfRangeComponents(t *testing.T) {
	w := New()
	seed := testSeed(t)
	base := IndexPath(0)

	tests := []struct {
		name string
		path Path
	}{
		{"Purpose", Path{Purpose: 1 << 31, CoinType: CoinType}},
		{"CoinType", Path{Purpose: Purpose, CoinType: IndexLimit + CoinType}},
		{"Account", Path{Purpose: Purpose, CoinType: CoinType, Account: 1 << 31}},
		{"AccountMax", Path{Purpose: Purpose, CoinType: CoinType, Account: ^uint32(0)}},
		{"Change", Path{Purpose: Purpose, CoinType: CoinType, Change: IndexLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := w.DeriveAddress(seed, tt.path)
			assert.ErrorIs(t, err, ErrHardenedIndex)
			assert.Empty(t, addr)
		})
	}

	base.Account = IndexLimit - 1
	_, err := w.DeriveAddress(seed, base)
	assert.NoError(t, err, "largest non-hardened account must derive")
}

func TestPathString(t *testing.T) {
	assert.Equal(t, "m/44'/8000'/0'/0/7", IndexPath(7).String())
}

func TestParseAddress(t *testing.T) {
	addr, _ := New().DeriveAddress(testSeed(t), IndexPath(0))

	tests := []struct {
		name string
		addr string
		ok   bool
	}{
		{"Valid", addr, true},
		{"Empty", "", false},
		{"Garbage", "0OIl", false},
		{"BadChecksum", addr[:len(addr)-1] + flip(addr[len(addr)-1]), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAddress(tt.addr)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidAddress)
			}
		})
	}
}

func flip(c byte) string {
	if c == '2' {
		return "3"
	}
	return "2"
}

func TestSignAndVerifyMessage(t *testing.T) {
	w := New()
	seed := testSeed(t)
	addr, _ := w.DeriveAddress(seed, IndexPath(3))

	sig, err := w.SignMessage(seed, IndexPath(3), "hello skyguard")
	require.NoError(t, err)
	assert.Len(t, sig, 130)

	assert.NoError(t, w.VerifySignature(addr, "hello skyguard", sig))

	err = w.VerifySignature(addr, "hello skyguarD", sig)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, errcode.InvalidSignature, errcode.From(err))

	other, _ := w.DeriveAddress(seed, IndexPath(4))
	assert.ErrorIs(t, w.VerifySignature(other, "hello skyguard", sig), ErrInvalidSignature)

	assert.ErrorIs(t, w.VerifySignature(addr, "hello skyguard", "zz"), ErrInvalidSignature)
	assert.ErrorIs(t, w.VerifySignature("nope", "hello skyguard", sig), ErrInvalidAddress)
}

func TestCheckBounds(t *testing.T) {
	tests := []struct {
		name    string
		in, out int
		want    error
	}{
		{"Ok", 1, 1, nil},
		{"Max", MaxInputs, MaxOutputs, nil},
		{"NoInputs", 0, 1, ErrNoInputs},
		{"TooManyInputs", MaxInputs + 1, 1, ErrTooManyInputs},
		{"NoOutputs", 1, 0, ErrNoOutputs},
		{"TooManyOutputs", 1, MaxOutputs + 1, ErrTooManyOutputs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBounds(tt.in, tt.out)
			if !errors.Is(err, tt.want) {
				t.Errorf("CheckBounds(%d, %d) = %v, want %v", tt.in, tt.out, err, tt.want)
			}
		})
	}
}

func TestSignTransaction(t *testing.T) {
	w := New()
	seed := testSeed(t)
	change, _ := w.DeriveAddress(seed, IndexPath(1))
	dest, _ := w.DeriveAddress(testSeedFor(t, "other"), IndexPath(0))
	hash := strings.Repeat("ab", 32)
	one := uint32(1)

	tx := func() *Transaction {
		return &Transaction{
			Inputs: []Input{{Hash: hash, Index: 0}, {Hash: strings.Repeat("cd", 32), Index: 2}},
			Outputs: []Output{
				{Address: dest, Coin: 1000000, Hour: 2},
				{Address: change, Coin: 500000, Hour: 1, AddressIndex: &one},
			},
		}
	}

	t.Run("ConfirmsOnlyNonChange", func(t *testing.T) {
		var confirmed []string
		sigs, err := w.SignTransaction(seed, tx(), func(out Output) error {
			confirmed = append(confirmed, out.Address)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{dest}, confirmed)
		require.Len(t, sigs, 2)
		assert.NotEqual(t, sigs[0], sigs[1])
	})

	t.Run("Denied", func(t *testing.T) {
		sigs, err := w.SignTransaction(seed, tx(), func(Output) error {
			return errcode.ActionCancelled
		})
		assert.Nil(t, sigs)
		assert.Equal(t, errcode.ActionCancelled, errcode.From(err))
	})

	t.Run("WrongReturnAddress", func(t *testing.T) {
		bad := tx()
		two := uint32(2)
		bad.Outputs[1].AddressIndex = &two
		called := false
		_, err := w.SignTransaction(seed, bad, func(Output) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, ErrWrongReturnAddress)
		assert.False(t, called, "no confirmation before validation completes")
	})

	t.Run("BadInputHash", func(t *testing.T) {
		bad := tx()
		bad.Inputs[0].Hash = "abcd"
		_, err := w.SignTransaction(seed, bad, func(Output) error { return nil })
		assert.ErrorIs(t, err, ErrInvalidInputHash)
	})

	t.Run("SignatureCommitsToOutputs", func(t *testing.T) {
		ok := func(Output) error { return nil }
		a, _ := w.SignTransaction(seed, tx(), ok)
		changed := tx()
		changed.Outputs[0].Coin++
		b, _ := w.SignTransaction(seed, changed, ok)
		assert.NotEqual(t, a[0], b[0])
	})
}

func testSeedFor(t *testing.T, passphrase string) []byte {
	t.Helper()
	seed, err := New().MnemonicToSeed(testMnemonic, passphrase)
	require.NoError(t, err)
	return seed
}
