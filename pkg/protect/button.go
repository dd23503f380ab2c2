package protect

import (
	"context"

	"github.com/skyguard-wallet/skyguard-go/pkg/input"
	"github.com/skyguard-wallet/skyguard-go/pkg/log"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// Button asks the user to confirm on the device. It returns true for Yes and
// false for No, Cancel or Initialize. With confirmOnly set, No is ignored and
// the gate keeps waiting. There is no timeout.
//
// Button presses and debug link decisions count only after the host has
// acknowledged the request with ButtonAck. A non-nil error means the input
// source or the host link failed.
func (p *Protector) Button(ctx context.Context, code wire.ButtonRequestType, confirmOnly bool) (ok bool, err error) {
	if p.halted {
		return false, ErrHalted
	}
	purpose := code.String()
	p.gateStarted(log.GateButton, purpose)
	defer func() { p.gateResolved(log.GateButton, purpose, err, ok) }()

	if err := p.send(&wire.ButtonRequest{Code: code}); err != nil {
		return false, err
	}

	acked := false
	var pending *bool

	// decide applies a Yes/No. done is false when the gate keeps waiting.
	decide := func(yes bool) (result, done bool) {
		if yes {
			return true, true
		}
		if confirmOnly {
			return false, false
		}
		return false, true
	}

	for {
		ev, err := p.src.Next(ctx)
		if err != nil {
			return false, err
		}

		switch ev.Kind {
		case input.TimerTick:
			continue

		case input.ButtonEvent:
			if !acked {
				continue
			}
			switch ev.Button {
			case input.ButtonYes:
				return true, nil
			case input.ButtonNo:
				if result, done := decide(false); done {
					return result, nil
				}
			}

		case input.HostMessage:
			switch ev.Message.(type) {
			case *wire.ButtonAck:
				acked = true
				if pending != nil {
					yes := *pending
					pending = nil
					if result, done := decide(yes); done {
						return result, nil
					}
				}
				continue
			case *wire.Cancel:
				return false, nil
			case *wire.Initialize:
				p.abortByInitialize()
				return false, nil
			}

			var decision *bool
			handled, err := p.handleDebug(ev.Message, &decision)
			if err != nil {
				return false, err
			}
			if handled {
				if decision == nil {
					continue
				}
				if !acked {
					pending = decision
					continue
				}
				if result, done := decide(*decision); done {
					return result, nil
				}
				continue
			}

			if err := p.unexpected(ev.Message); err != nil {
				return false, err
			}
		}
	}
}
