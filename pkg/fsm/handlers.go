package fsm

import (
	"context"
	"strings"

	"github.com/skyguard-wallet/skyguard-go/pkg/errcode"
	"github.com/skyguard-wallet/skyguard-go/pkg/log"
	"github.com/skyguard-wallet/skyguard-go/pkg/version"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// handleInitialize drops the passphrase but keeps the PIN cached.
func (d *Dispatcher) handleInitialize(*wire.Initialize) outcome {
	d.sess.ClearPassphrase()
	d.logState(log.StateEntitySession, "INITIALIZED", "host Initialize")
	return reply(d.features())
}

func (d *Dispatcher) features() *wire.Features {
	v := version.MustCurrent()
	return &wire.Features{
		Vendor:               d.config.Vendor,
		MajorVersion:         v.Major,
		MinorVersion:         v.Minor,
		PatchVersion:         v.Patch,
		DeviceID:             d.store.DeviceID(),
		Label:                d.store.Label(),
		Initialized:          d.store.HasMnemonic(),
		PinProtection:        d.store.HasPin(),
		PassphraseProtection: d.store.PassphraseProtection(),
		PinCached:            d.sess.PinVerified(),
		PassphraseCached:     d.sess.PassphraseCached(),
		PinFailCount:         d.store.PinFails(),
	}
}

func (d *Dispatcher) handlePing(ctx context.Context, m *wire.Ping) outcome {
	if m.ButtonProtection {
		if err := d.confirm(ctx, wire.ButtonRequestProtectCall, "Do you really want to", "answer to ping?"); err != nil {
			return fail(err)
		}
	}
	if m.PinProtection {
		if err := d.gates.Pin(ctx, true); err != nil {
			return fail(err)
		}
	}
	if m.PassphraseProtection {
		if err := d.gates.Passphrase(ctx); err != nil {
			return failText(err, "Ping cancelled")
		}
	}
	return reply(&wire.Success{Message: m.Message})
}

func (d *Dispatcher) handleChangePin(ctx context.Context, m *wire.ChangePin) outcome {
	if m.Remove && !d.store.HasPin() {
		return reply(&wire.Success{Message: "PIN removed"})
	}

	question := "set new PIN?"
	switch {
	case m.Remove:
		question = "remove current PIN?"
	case d.store.HasPin():
		question = "change current PIN?"
	}
	if err := d.confirm(ctx, wire.ButtonRequestChangePin, "Do you really want to", question); err != nil {
		return fail(err)
	}
	if err := d.gates.Pin(ctx, false); err != nil {
		return fail(err)
	}
	if err := d.gates.ChangePin(ctx, m.Remove); err != nil {
		return fail(err)
	}

	if m.Remove {
		d.logState(log.StateEntityDevice, "PIN_REMOVED", "ChangePin")
		return reply(&wire.Success{Message: "PIN removed"})
	}
	d.logState(log.StateEntityDevice, "PIN_CHANGED", "ChangePin")
	return reply(&wire.Success{Message: "PIN changed"})
}

func (d *Dispatcher) handleApplySettings(ctx context.Context, m *wire.ApplySettings) outcome {
	if m.Label == nil && m.UsePassphrase == nil {
		return failText(errcode.InvalidArg, "No setting provided")
	}
	if err := d.gates.Pin(ctx, true); err != nil {
		return fail(err)
	}

	if m.Label != nil {
		if err := d.confirm(ctx, wire.ButtonRequestApplySettings, "Do you really want to", "change label to", *m.Label+"?"); err != nil {
			return fail(err)
		}
	}
	if m.UsePassphrase != nil {
		question := "disable passphrase"
		if *m.UsePassphrase {
			question = "enable passphrase"
		}
		if err := d.confirm(ctx, wire.ButtonRequestApplySettings, "Do you really want to", question, "encryption?"); err != nil {
			return fail(err)
		}
	}

	if m.Label != nil {
		if err := d.store.SetLabel(*m.Label); err != nil {
			return fail(err)
		}
	}
	if m.UsePassphrase != nil {
		if err := d.store.SetPassphraseProtection(*m.UsePassphrase); err != nil {
			return fail(err)
		}
		d.sess.ClearPassphrase()
	}
	return reply(&wire.Success{Message: "Settings applied"})
}

func (d *Dispatcher) handleWipeDevice(ctx context.Context) outcome {
	if err := d.confirm(ctx, wire.ButtonRequestWipeDevice, "Do you really want to", "wipe the device?", "", "All data will be lost."); err != nil {
		return fail(err)
	}
	if err := d.store.Wipe(); err != nil {
		return fail(err)
	}
	d.sess.Clear(false)
	d.logState(log.StateEntityDevice, "WIPED", "WipeDevice")
	return reply(&wire.Success{Message: "Device wiped"})
}

func (d *Dispatcher) handleSetMnemonic(ctx context.Context, m *wire.SetMnemonic) outcome {
	if d.store.HasMnemonic() {
		return fail(errcode.Initialized)
	}
	mnemonic := strings.Join(strings.Fields(m.Mnemonic), " ")
	if mnemonic == "" {
		return failText(errcode.InvalidArg, "Mnemonic is empty")
	}
	if err := d.confirm(ctx, wire.ButtonRequestProtectCall, "Do you really want to", "load mnemonic?"); err != nil {
		return fail(err)
	}
	if err := d.store.SetMnemonic(mnemonic); err != nil {
		return fail(err)
	}
	d.sess.ClearPassphrase()
	d.logState(log.StateEntityDevice, "INITIALIZED", "SetMnemonic")
	return reply(&wire.Success{Message: "Mnemonic successfully configured"})
}
