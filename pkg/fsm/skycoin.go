package fsm

import (
	"context"
	"errors"
	"fmt"

	"github.com/skyguard-wallet/skyguard-go/pkg/errcode"
	"github.com/skyguard-wallet/skyguard-go/pkg/wallet"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// MaxAddresses is the most addresses one SkycoinAddress request may ask for.
const MaxAddresses = 99

// bip44Path converts a wire descriptor to a derivation path for index.
func bip44Path(b *wire.Bip44Addr, index uint32) wallet.Path {
	return wallet.Path{
		Purpose:  wallet.Purpose,
		CoinType: b.CoinType,
		Account:  b.Account,
		Change:   b.Change,
		Index:    index,
	}
}

func (d *Dispatcher) handleAddress(ctx context.Context, m *wire.SkycoinAddress) outcome {
	count, start := m.AddressN, m.StartIndex
	if m.Bip44Addr != nil {
		start = m.Bip44Addr.AddressStartIndex
		if m.Bip44Addr.AddressN != 0 {
			count = m.Bip44Addr.AddressN
		}
	}
	if count > MaxAddresses {
		return fail(errcode.TooManyAddresses)
	}
	if count == 0 {
		return failText(errcode.InvalidArg, "No address requested")
	}
	if start >= wallet.IndexLimit || count > wallet.IndexLimit-start {
		return failText(errcode.InvalidArg, "Address index out of range")
	}
	if !d.store.HasMnemonic() {
		return fail(errcode.MnemonicRequired)
	}
	if err := d.gates.Pin(ctx, true); err != nil {
		return fail(err)
	}

	addrs, err := d.deriveAddresses(ctx, m.Bip44Addr, start, count)
	if err != nil {
		return fail(err)
	}
	resp := &wire.ResponseSkycoinAddress{Addresses: addrs}

	if err := addressConfirmation(m.ConfirmAddress, count); errors.Is(err, errcode.UserConfirmation) {
		d.gates.Display().Address(addrs[0])
		ok, err := d.gates.Button(ctx, wire.ButtonRequestProtectCall, false)
		if err != nil {
			return fail(err)
		}
		if !ok {
			return fail(errcode.ActionCancelled)
		}
	}
	return reply(resp)
}

// addressConfirmation returns errcode.UserConfirmation when the address
// must be shown and confirmed before it is released.
func addressConfirmation(requested bool, count uint32) error {
	if requested && count == 1 {
		return errcode.UserConfirmation
	}
	return nil
}

func (d *Dispatcher) deriveAddresses(ctx context.Context, b *wire.Bip44Addr, start, count uint32) ([]string, error) {
	seed, err := d.seed(ctx)
	if err != nil {
		return nil, err
	}
	defer clear(seed)

	addrs := make([]string, 0, count)
	for n := uint32(0); n < count; n++ {
		path := wallet.IndexPath(start + n)
		if b != nil {
			path = bip44Path(b, start+n)
		}
		addr, err := d.signer.DeriveAddress(seed, path)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

func (d *Dispatcher) handleSignMessage(ctx context.Context, m *wire.SkycoinSignMessage) outcome {
	if !d.store.HasMnemonic() {
		return failText(errcode.MnemonicRequired, "Mnemonic not set")
	}
	if err := d.gates.Pin(ctx, false); err != nil {
		return fail(err)
	}

	seed, err := d.seed(ctx)
	if err != nil {
		return fail(err)
	}
	defer clear(seed)

	path := wallet.IndexPath(m.AddressN)
	failMsg := "Unable to get keys pair"
	if m.Bip44Addr != nil {
		path = bip44Path(m.Bip44Addr, m.Bip44Addr.AddressStartIndex)
		failMsg = "Unable to get address"
	}
	addr, err := d.signer.DeriveAddress(seed, path)
	if err != nil {
		return failText(err, failMsg)
	}

	if err := d.confirm(ctx, wire.ButtonRequestProtectCall, "Do you really want to", "sign message using", "this address?", addr); err != nil {
		return fail(err)
	}

	sig, err := d.signer.SignMessage(seed, path, m.Message)
	if err != nil {
		return fail(err)
	}
	return reply(&wire.ResponseSkycoinSignMessage{SignedMessage: sig}).withNotice("Signature success")
}

func (d *Dispatcher) handleCheckSignature(m *wire.SkycoinCheckMessageSignature) outcome {
	err := d.signer.VerifySignature(m.Address, m.Message, m.Signature)
	switch errcode.From(err) {
	case errcode.Ok:
		return reply(&wire.Success{Message: m.Address}).withNotice("Verification success")
	case errcode.AddressGeneration, errcode.InvalidSignature, errcode.InvalidValue:
		return fail(fmt.Errorf("%w: %w", errcode.InvalidSignature, err)).withNotice("Wrong signature")
	default:
		return failText(err, "Firmware error.")
	}
}

func (d *Dispatcher) handleTransactionSign(ctx context.Context, m *wire.TransactionSign) outcome {
	if err := wallet.CheckBounds(len(m.Inputs), len(m.Outputs)); err != nil {
		return fail(err)
	}
	if err := d.gates.Pin(ctx, true); err != nil {
		return fail(err)
	}
	if !d.store.HasMnemonic() {
		return failText(errcode.MnemonicRequired, "Mnemonic not set")
	}

	seed, err := d.seed(ctx)
	if err != nil {
		return fail(err)
	}
	defer clear(seed)

	tx := &wallet.Transaction{
		Inputs:  make([]wallet.Input, len(m.Inputs)),
		Outputs: make([]wallet.Output, len(m.Outputs)),
	}
	for i, in := range m.Inputs {
		tx.Inputs[i] = wallet.Input{Hash: in.HashIn, Index: in.Index}
	}
	for i, out := range m.Outputs {
		tx.Outputs[i] = wallet.Output{Address: out.Address, Coin: out.Coin, Hour: out.Hour, AddressIndex: out.AddressIndex}
	}

	sigs, err := d.signer.SignTransaction(seed, tx, func(out wallet.Output) error {
		return d.confirm(ctx, wire.ButtonRequestConfirmOutput,
			"Do you really want to",
			"send "+FormatCoins(out.Coin)+" SKY and",
			fmt.Sprintf("%d hours to", out.Hour),
			out.Address,
		)
	})
	if errors.Is(err, wallet.ErrWrongReturnAddress) {
		return failText(err, "Wrong return address")
	}
	if err != nil {
		return fail(err)
	}
	return reply(&wire.ResponseTransactionSign{Signatures: sigs})
}

// dropletsPerCoin is the number of droplets in one coin.
const dropletsPerCoin = 1_000_000

// FormatCoins renders an amount in droplets as a decimal coin value
// without trailing zeros.
func FormatCoins(droplets uint64) string {
	whole, frac := droplets/dropletsPerCoin, droplets%dropletsPerCoin
	if frac == 0 {
		return fmt.Sprintf("%d", whole)
	}
	s := fmt.Sprintf("%d.%06d", whole, frac)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	return s
}
