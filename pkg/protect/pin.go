package protect

import (
	"context"

	"github.com/skyguard-wallet/skyguard-go/pkg/errcode"
	"github.com/skyguard-wallet/skyguard-go/pkg/input"
	"github.com/skyguard-wallet/skyguard-go/pkg/lockout"
	"github.com/skyguard-wallet/skyguard-go/pkg/log"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// Prompts shown on the device.
const (
	promptCurrentPin = "Please enter current PIN:"
	promptNewPin     = "Please enter new PIN:"
	promptRepeatPin  = "Please re-enter new PIN:"
)

// Pin verifies the user's PIN.
//
// It succeeds at once when no PIN is set, or when useCached is set and the
// session already holds a verified PIN. Otherwise it waits out the lockout
// delay, prompts, records the attempt and compares. It returns
// errcode.PinCancelled, errcode.PinInvalid or ErrHalted on failure.
func (p *Protector) Pin(ctx context.Context, useCached bool) (err error) {
	if p.halted {
		return ErrHalted
	}
	if !p.store.HasPin() || (useCached && p.sess.PinVerified()) {
		return nil
	}

	p.gateStarted(log.GatePin, wire.PinMatrixCurrent.String())
	defer func() { p.gateResolved(log.GatePin, wire.PinMatrixCurrent.String(), err, err == nil) }()

	wait := lockout.WaitSeconds(p.store.PinFails())
	if lockout.IsExhausted(wait) {
		return p.wipeAndHalt(ctx)
	}
	if wait > 0 {
		if err := p.countdown(ctx, wait); err != nil {
			return err
		}
	}

	pin, err := p.prompter.RequestPin(ctx, wire.PinMatrixCurrent, promptCurrentPin)
	if err != nil {
		return err
	}
	if pin == "" {
		return errcode.PinCancelled
	}

	if err := p.store.IncrementPinFails(); err != nil {
		p.debugLog("recording PIN attempt failed", "error", err)
		return errcode.PinInvalid
	}

	if !p.store.PinMatches(pin) {
		if lockout.IsExhausted(lockout.WaitSeconds(p.store.PinFails())) {
			return p.wipeAndHalt(ctx)
		}
		return errcode.PinInvalid
	}

	p.sess.SetPinVerified()
	if err := p.store.ResetPinFails(); err != nil && p.config.Logger != nil {
		p.config.Logger.Warn("resetting PIN fail counter failed", "error", err)
	}
	return nil
}

// countdown renders the remaining wait once per tick. Only Initialize
// interrupts it, and nothing shortens it.
func (p *Protector) countdown(ctx context.Context, wait uint64) (err error) {
	p.gateStarted(log.GateCountdown, lockout.FormatWait(wait))
	defer func() { p.gateResolved(log.GateCountdown, lockout.FormatWait(wait), err, err == nil) }()

	if r, ok := p.src.(input.TickResetter); ok {
		r.ResetTicks()
	}
	for remaining := wait; remaining > 0; {
		p.disp.Countdown(remaining)

		ev, err := p.src.Next(ctx)
		if err != nil {
			return err
		}
		switch ev.Kind {
		case input.TimerTick:
			remaining--
		case input.HostMessage:
			switch ev.Message.(type) {
			case *wire.Initialize:
				p.abortByInitialize()
				return errcode.PinCancelled
			case *wire.Cancel:
				// Ignored; the wait cannot be skipped.
			default:
				handled, err := p.handleDebug(ev.Message, nil)
				if err != nil {
					return err
				}
				if !handled {
					if err := p.unexpected(ev.Message); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// ChangePin sets, replaces or removes the PIN. The caller has already
// verified the current PIN. A new PIN is entered twice and must match.
func (p *Protector) ChangePin(ctx context.Context, remove bool) (err error) {
	if p.halted {
		return ErrHalted
	}
	p.gateStarted(log.GateChangePin, wire.PinMatrixNewFirst.String())
	defer func() { p.gateResolved(log.GateChangePin, wire.PinMatrixNewFirst.String(), err, err == nil) }()

	if remove {
		return p.store.SetPin("")
	}

	first, err := p.prompter.RequestPin(ctx, wire.PinMatrixNewFirst, promptNewPin)
	if err != nil {
		return err
	}
	if first == "" {
		return errcode.PinCancelled
	}
	second, err := p.prompter.RequestPin(ctx, wire.PinMatrixNewSecond, promptRepeatPin)
	if err != nil {
		return err
	}
	if second == "" {
		return errcode.PinCancelled
	}
	if first != second {
		return errcode.PinMismatch
	}

	if err := p.store.SetPin(first); err != nil {
		return err
	}
	p.sess.SetPinVerified()
	return nil
}
