package protect

import (
	"context"

	"github.com/skyguard-wallet/skyguard-go/pkg/errcode"
	"github.com/skyguard-wallet/skyguard-go/pkg/input"
	"github.com/skyguard-wallet/skyguard-go/pkg/pinmatrix"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// PinPrompter collects one PIN entry. It returns errcode.PinCancelled when
// the user cancels or enters nothing.
type PinPrompter interface {
	RequestPin(ctx context.Context, kind wire.PinMatrixRequestType, prompt string) (string, error)
}

// PinPrompterFunc adapts a function to PinPrompter.
type PinPrompterFunc func(ctx context.Context, kind wire.PinMatrixRequestType, prompt string) (string, error)

// RequestPin calls f.
func (f PinPrompterFunc) RequestPin(ctx context.Context, kind wire.PinMatrixRequestType, prompt string) (string, error) {
	return f(ctx, kind, prompt)
}

// RequestPin prompts through the configured PinPrompter.
func (p *Protector) RequestPin(ctx context.Context, kind wire.PinMatrixRequestType, prompt string) (string, error) {
	if p.halted {
		return "", ErrHalted
	}
	return p.prompter.RequestPin(ctx, kind, prompt)
}

// matrixPrompter shows a scrambled keypad and reads positions from the host.
type matrixPrompter struct {
	p *Protector
}

func (m *matrixPrompter) RequestPin(ctx context.Context, kind wire.PinMatrixRequestType, prompt string) (string, error) {
	p := m.p

	matrix, err := pinmatrix.Start(p.config.Rand)
	if err != nil {
		return "", err
	}
	if err := p.send(&wire.PinMatrixRequest{Type: kind}); err != nil {
		return "", err
	}
	p.disp.PinMatrix(prompt, matrix.Layout())

	for {
		ev, err := p.src.Next(ctx)
		if err != nil {
			return "", err
		}
		if ev.Kind != input.HostMessage {
			continue
		}

		switch msg := ev.Message.(type) {
		case *wire.PinMatrixAck:
			pin, ok := matrix.Decode(msg.Pin)
			if !ok {
				return "", errcode.PinCancelled
			}
			return pin, nil
		case *wire.Cancel:
			return "", errcode.PinCancelled
		case *wire.Initialize:
			p.abortByInitialize()
			return "", errcode.PinCancelled
		}

		handled, err := p.handleDebug(ev.Message, nil)
		if err != nil {
			return "", err
		}
		if !handled {
			if err := p.unexpected(ev.Message); err != nil {
				return "", err
			}
		}
	}
}
