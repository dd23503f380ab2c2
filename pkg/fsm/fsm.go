package fsm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skyguard-wallet/skyguard-go/pkg/display"
	"github.com/skyguard-wallet/skyguard-go/pkg/errcode"
	"github.com/skyguard-wallet/skyguard-go/pkg/log"
	"github.com/skyguard-wallet/skyguard-go/pkg/protect"
	"github.com/skyguard-wallet/skyguard-go/pkg/session"
	"github.com/skyguard-wallet/skyguard-go/pkg/storage"
	"github.com/skyguard-wallet/skyguard-go/pkg/wallet"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// Sender delivers a message to the host.
type Sender interface {
	Send(msg wire.Message) error
}

// Gates are the protection gates a request may pass through.
// *protect.Protector implements it.
type Gates interface {
	Button(ctx context.Context, code wire.ButtonRequestType, confirmOnly bool) (bool, error)
	Pin(ctx context.Context, useCached bool) error
	Passphrase(ctx context.Context) error
	ChangePin(ctx context.Context, remove bool) error
	Display() display.Display
	DebugState() (*wire.DebugLinkState, bool)
	Halted() bool
}

var _ Gates = (*protect.Protector)(nil)

// Config configures a Dispatcher.
type Config struct {
	// Vendor is reported in Features.
	Vendor string

	// Logger for debug output (optional, nil disables).
	Logger *slog.Logger

	// EventLog receives dispatcher state and error events (optional).
	EventLog log.Logger
}

// DefaultConfig returns the default dispatcher configuration.
func DefaultConfig() Config {
	return Config{Vendor: "skyguard.io"}
}

// Deps are the collaborators a Dispatcher uses.
type Deps struct {
	Sender  Sender
	Gates   Gates
	Store   storage.CredentialStore
	Session *session.Session
	Signer  wallet.Signer
}

// Dispatcher handles host requests. It is driven by one goroutine.
type Dispatcher struct {
	config Config
	out    Sender
	gates  Gates
	store  storage.CredentialStore
	sess   *session.Session
	signer wallet.Signer
}

// New creates a Dispatcher.
func New(config Config, deps Deps) *Dispatcher {
	return &Dispatcher{
		config: config,
		out:    deps.Sender,
		gates:  deps.Gates,
		store:  deps.Store,
		sess:   deps.Session,
		signer: deps.Signer,
	}
}

// outcome is what a handler produced: a response message, or an error that
// Response renders. notice is shown before the display returns home.
type outcome struct {
	resp   wire.Message
	err    error
	text   string
	notice string
}

func reply(msg wire.Message) outcome { return outcome{resp: msg} }

func fail(err error) outcome { return outcome{err: err} }

func failText(err error, text string) outcome { return outcome{err: err, text: text} }

func (o outcome) withNotice(notice string) outcome {
	o.notice = notice
	return o
}

// Handle processes one host request and sends its terminal response. It
// returns protect.ErrHalted if the device halted, or the error from sending
// the response.
func (d *Dispatcher) Handle(ctx context.Context, msg wire.Message) error {
	if d.gates.Halted() {
		return protect.ErrHalted
	}
	d.debugLog("handling request", "type", msg.MessageType())

	if decision, ok := msg.(*wire.DebugLinkDecision); ok {
		if _, enabled := d.gates.DebugState(); enabled {
			d.debugLog("debug decision outside a gate dropped", "yes", decision.YesNo)
			return nil
		}
	}

	out := d.dispatch(ctx, msg)
	if errors.Is(out.err, protect.ErrHalted) || d.gates.Halted() {
		return protect.ErrHalted
	}

	resp := out.resp
	if out.err != nil {
		code := errcode.From(out.err)
		if code == errcode.Failed {
			d.logError(out.err, msg.MessageType())
		}
		d.debugLog("request failed", "type", msg.MessageType(), "code", code, "error", out.err)
		resp = Response(code, out.text, msg.MessageType())
	}

	err := d.send(resp)

	disp := d.gates.Display()
	if out.notice != "" {
		disp.Notify(out.notice)
	}
	disp.Home()
	return err
}

func (d *Dispatcher) dispatch(ctx context.Context, msg wire.Message) outcome {
	switch m := msg.(type) {
	case *wire.Initialize:
		return d.handleInitialize(m)
	case *wire.GetFeatures:
		return reply(d.features())
	case *wire.Ping:
		return d.handlePing(ctx, m)
	case *wire.Cancel:
		return fail(errcode.ActionCancelled)
	case *wire.ChangePin:
		return d.handleChangePin(ctx, m)
	case *wire.ApplySettings:
		return d.handleApplySettings(ctx, m)
	case *wire.WipeDevice:
		return d.handleWipeDevice(ctx)
	case *wire.SetMnemonic:
		return d.handleSetMnemonic(ctx, m)
	case *wire.SkycoinAddress:
		return d.handleAddress(ctx, m)
	case *wire.SkycoinSignMessage:
		return d.handleSignMessage(ctx, m)
	case *wire.SkycoinCheckMessageSignature:
		return d.handleCheckSignature(m)
	case *wire.TransactionSign:
		return d.handleTransactionSign(ctx, m)
	case *wire.DebugLinkGetState:
		if st, ok := d.gates.DebugState(); ok {
			return reply(st)
		}
	}
	return fail(errcode.UnexpectedMessage)
}

// confirm shows a dialog and waits for the button. A denial is
// ActionCancelled.
func (d *Dispatcher) confirm(ctx context.Context, code wire.ButtonRequestType, lines ...string) error {
	d.gates.Display().Dialog(display.DialogScreen("Cancel", "Confirm", lines...))
	ok, err := d.gates.Button(ctx, code, false)
	if err != nil {
		return err
	}
	if !ok {
		return errcode.ActionCancelled
	}
	return nil
}

// seed runs the passphrase gate and derives the wallet seed.
func (d *Dispatcher) seed(ctx context.Context) ([]byte, error) {
	if !d.store.HasMnemonic() {
		return nil, wallet.ErrNoMnemonic
	}
	if err := d.gates.Passphrase(ctx); err != nil {
		return nil, err
	}
	var passphrase string
	if s, ok := d.sess.Passphrase(); ok {
		passphrase = s.Reveal()
	}
	return d.signer.MnemonicToSeed(d.store.Mnemonic(), passphrase)
}

func (d *Dispatcher) send(msg wire.Message) error {
	if err := d.out.Send(msg); err != nil {
		return fmt.Errorf("send %s: %w", msg.MessageType(), err)
	}
	return nil
}

func (d *Dispatcher) logState(entity log.StateEntity, state, reason string) {
	if d.config.EventLog != nil {
		d.config.EventLog.Log(log.NewStateEvent(log.LayerDispatch, entity, "", state, reason))
	}
}

func (d *Dispatcher) logError(err error, msgType wire.MessageType) {
	if d.config.Logger != nil {
		d.config.Logger.Warn("request failed", "type", msgType, "error", err)
	}
	if d.config.EventLog != nil {
		d.config.EventLog.Log(log.NewErrorEvent(log.LayerDispatch, err, msgType.String()))
	}
}

// debugLog logs a debug message if logging is enabled.
func (d *Dispatcher) debugLog(msg string, args ...any) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, args...)
	}
}
