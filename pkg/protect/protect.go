package protect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/skyguard-wallet/skyguard-go/pkg/display"
	"github.com/skyguard-wallet/skyguard-go/pkg/errcode"
	"github.com/skyguard-wallet/skyguard-go/pkg/input"
	"github.com/skyguard-wallet/skyguard-go/pkg/log"
	"github.com/skyguard-wallet/skyguard-go/pkg/session"
	"github.com/skyguard-wallet/skyguard-go/pkg/storage"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// ErrHalted is returned once the device has wiped itself after too many
// wrong PINs. Nothing may be sent to the host afterwards.
var ErrHalted = errors.New("protect: device wiped and halted")

// Sender delivers a message to the host.
type Sender interface {
	Send(msg wire.Message) error
}

// HaltFunc is called after the wipe. It should block until the process is
// told to stop.
type HaltFunc func(ctx context.Context)

// Config configures a Protector.
type Config struct {
	// Logger for debug output (optional, nil disables).
	Logger *slog.Logger

	// EventLog receives gate events for protocol capture (optional).
	EventLog log.Logger

	// DebugLink enables DebugLinkDecision and DebugLinkGetState. Ignored in
	// production builds.
	DebugLink bool

	// Rand shuffles the PIN matrix. Nil uses crypto/rand.
	Rand io.Reader
}

// DefaultConfig returns a configuration with the debug link off.
func DefaultConfig() Config {
	return Config{}
}

// Deps are the collaborators a Protector drives.
type Deps struct {
	Source  input.Source
	Sender  Sender
	Display display.Display
	Store   storage.CredentialStore
	Session *session.Session

	// Prompter asks for PIN entry. Nil uses the scrambled matrix over the host link.
	Prompter PinPrompter

	// Halt runs after a lockout wipe. Nil blocks until ctx is done.
	Halt HaltFunc
}

// Protector runs the gates. It is driven by one goroutine.
type Protector struct {
	config   Config
	src      input.Source
	out      Sender
	disp     *trackedDisplay
	store    storage.CredentialStore
	sess     *session.Session
	prompter PinPrompter
	halt     HaltFunc

	debug   bool
	aborted bool
	halted  bool
}

// New creates a Protector.
func New(config Config, deps Deps) *Protector {
	p := &Protector{
		config: config,
		src:    deps.Source,
		out:    deps.Sender,
		disp:   &trackedDisplay{Display: deps.Display},
		store:  deps.Store,
		sess:   deps.Session,
		halt:   deps.Halt,
		debug:  debugLinkBuild && config.DebugLink,
	}
	if p.halt == nil {
		p.halt = func(ctx context.Context) { <-ctx.Done() }
	}
	p.prompter = deps.Prompter
	if p.prompter == nil {
		p.prompter = &matrixPrompter{p: p}
	}
	return p
}

// Display returns the display wrapper the gates render through. Callers
// should draw through it so the debug link reports the current layout.
func (p *Protector) Display() display.Display {
	return p.disp
}

// AbortedByInitialize reports whether an Initialize interrupted a gate since
// the flag was last taken.
func (p *Protector) AbortedByInitialize() bool {
	return p.aborted
}

// TakeAborted returns the abort flag and clears it.
func (p *Protector) TakeAborted() bool {
	a := p.aborted
	p.aborted = false
	return a
}

// Halted reports whether the device wiped itself.
func (p *Protector) Halted() bool {
	return p.halted
}

// DebugLinkEnabled reports whether debug link messages are honoured.
func (p *Protector) DebugLinkEnabled() bool {
	return p.debug
}

// abortByInitialize raises the sticky flag.
func (p *Protector) abortByInitialize() {
	p.aborted = true
	p.debugLog("gate aborted by Initialize")
}

func (p *Protector) send(msg wire.Message) error {
	if err := p.out.Send(msg); err != nil {
		return fmt.Errorf("send %s: %w", msg.MessageType(), err)
	}
	return nil
}

// unexpected handles a host message that does not belong to the running
// gate: tiny messages are dropped, everything else gets a Failure.
func (p *Protector) unexpected(msg wire.Message) error {
	t := msg.MessageType()
	if wire.IsTiny(t) && (p.debug || !wire.IsDebugLink(t)) {
		p.debugLog("tiny message dropped during gate", "type", t)
		return nil
	}
	p.debugLog("unexpected message during gate", "type", t)
	return p.send(&wire.Failure{
		Code:    wire.FailureUnexpectedMessage,
		Message: "Unexpected message",
		MsgType: msg.MessageType(),
	})
}

// handleDebug serves debug link messages. It reports whether msg was one.
// Decisions are returned to the caller through decision.
func (p *Protector) handleDebug(msg wire.Message, decision **bool) (bool, error) {
	if !p.debug {
		return false, nil
	}
	switch m := msg.(type) {
	case *wire.DebugLinkGetState:
		return true, p.send(p.debugState())
	case *wire.DebugLinkDecision:
		if decision != nil {
			yes := m.YesNo
			*decision = &yes
		}
		return true, nil
	}
	return false, nil
}

// DebugState returns what the debug link reports about the current screen.
// It returns false when the debug link is disabled.
func (p *Protector) DebugState() (*wire.DebugLinkState, bool) {
	if !p.debug {
		return nil, false
	}
	return p.debugState(), true
}

// DebugState describes the current screen for the debug link.
func (p *Protector) debugState() *wire.DebugLinkState {
	return &wire.DebugLinkState{
		Layout:               p.disp.last.Text(),
		Matrix:               p.disp.matrix,
		PassphraseProtection: p.store.PassphraseProtection(),
		PinCached:            p.sess.PinVerified(),
	}
}

// wipeAndHalt erases every credential and parks the device.
func (p *Protector) wipeAndHalt(ctx context.Context) error {
	p.debugLog("too many wrong PINs, wiping storage")
	if err := p.store.Wipe(); err != nil && p.config.Logger != nil {
		p.config.Logger.Error("wipe failed", "error", err)
	}
	p.sess.Clear(false)
	p.halted = true
	p.logState("HALTED", "pin lockout exhausted")
	p.disp.Notify("Too many wrong PIN attempts.\nStorage wiped.\nPlease unplug the device.")
	p.halt(ctx)
	return ErrHalted
}

func (p *Protector) gateStarted(g log.GateKind, purpose string) {
	p.debugLog("gate started", "gate", g, "purpose", purpose)
	if p.config.EventLog != nil {
		p.config.EventLog.Log(log.NewGateEvent(g, log.GateStarted, purpose, ""))
	}
}

func (p *Protector) gateResolved(g log.GateKind, purpose string, err error, ok bool) {
	outcome := "CONFIRMED"
	switch {
	case errors.Is(err, ErrHalted):
		outcome = "HALTED"
	case err != nil:
		var c errcode.Code
		if errors.As(err, &c) {
			outcome = c.String()
		} else {
			outcome = "ERROR"
		}
	case !ok:
		outcome = "DENIED"
	}
	p.debugLog("gate resolved", "gate", g, "purpose", purpose, "outcome", outcome)
	if p.config.EventLog != nil {
		p.config.EventLog.Log(log.NewGateEvent(g, log.GateResolved, purpose, outcome))
	}
}

func (p *Protector) logState(state, reason string) {
	if p.config.EventLog != nil {
		p.config.EventLog.Log(log.NewStateEvent(log.LayerGate, log.StateEntityDevice, "", state, reason))
	}
}

// debugLog logs a debug message if logging is enabled.
func (p *Protector) debugLog(msg string, args ...any) {
	if p.config.Logger != nil {
		p.config.Logger.Debug(msg, args...)
	}
}

// trackedDisplay remembers the last screen for the debug link.
type trackedDisplay struct {
	display.Display
	last   display.Screen
	matrix string
}

func (d *trackedDisplay) Home() {
	d.last, d.matrix = display.HomeScreen(""), ""
	d.Display.Home()
}

func (d *trackedDisplay) Dialog(s display.Screen) {
	d.last, d.matrix = s, ""
	d.Display.Dialog(s)
}

func (d *trackedDisplay) Address(addr string) {
	d.last, d.matrix = display.AddressScreen(addr), ""
	d.Display.Address(addr)
}

func (d *trackedDisplay) Countdown(secs uint64) {
	d.last, d.matrix = display.CountdownScreen(secs), ""
	d.Display.Countdown(secs)
}

func (d *trackedDisplay) PinMatrix(prompt, layout string) {
	d.last, d.matrix = display.PinMatrixScreen(prompt, layout), layout
	d.Display.PinMatrix(prompt, layout)
}

func (d *trackedDisplay) Notify(text string) {
	d.last, d.matrix = display.NoticeScreen(text), ""
	d.Display.Notify(text)
}
