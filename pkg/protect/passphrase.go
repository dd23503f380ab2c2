package protect

import (
	"context"

	"github.com/skyguard-wallet/skyguard-go/pkg/display"
	"github.com/skyguard-wallet/skyguard-go/pkg/errcode"
	"github.com/skyguard-wallet/skyguard-go/pkg/input"
	"github.com/skyguard-wallet/skyguard-go/pkg/log"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// Passphrase makes sure the session holds a passphrase when passphrase
// protection is on. The passphrase is typed on the host; an empty one is
// valid. It returns errcode.ActionCancelled on Cancel or Initialize.
func (p *Protector) Passphrase(ctx context.Context) (err error) {
	if p.halted {
		return ErrHalted
	}
	if !p.store.PassphraseProtection() || p.sess.PassphraseCached() {
		return nil
	}

	p.gateStarted(log.GatePassphrase, "HOST")
	defer func() { p.gateResolved(log.GatePassphrase, "HOST", err, err == nil) }()

	if err := p.send(&wire.PassphraseRequest{}); err != nil {
		return err
	}
	p.disp.Dialog(display.DialogScreen("", "",
		"Please enter your",
		"passphrase using",
		"the computer's",
		"keyboard.",
	))
	defer p.disp.Home()

	for {
		ev, err := p.src.Next(ctx)
		if err != nil {
			return err
		}
		if ev.Kind != input.HostMessage {
			continue
		}

		switch msg := ev.Message.(type) {
		case *wire.PassphraseAck:
			// TODO: compare msg.State with the state sent in Initialize and
			// answer a mismatch with Failure instead of accepting it.
			p.sess.CachePassphrase(msg.Passphrase)
			return nil
		case *wire.Cancel:
			return errcode.ActionCancelled
		case *wire.Initialize:
			p.abortByInitialize()
			return errcode.ActionCancelled
		}

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
