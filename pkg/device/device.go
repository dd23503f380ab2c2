// Package device runs the firmware's idle loop.
//
// A Device owns one input source and one dispatcher for a power cycle. While
// idle it hands host requests to the dispatcher and ignores button presses
// and ticks. When a gate was interrupted by Initialize, the Initialize is
// replayed as a fresh request so the host still receives Features.
package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/skyguard-wallet/skyguard-go/pkg/display"
	"github.com/skyguard-wallet/skyguard-go/pkg/input"
	"github.com/skyguard-wallet/skyguard-go/pkg/log"
	"github.com/skyguard-wallet/skyguard-go/pkg/protect"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// ErrRunning is returned when Run is called while the loop is running.
var ErrRunning = errors.New("device: already running")

// Handler processes one host request.
type Handler interface {
	Handle(ctx context.Context, msg wire.Message) error
}

// AbortFlag exposes the sticky abort raised by Initialize during a gate.
type AbortFlag interface {
	TakeAborted() bool
}

// State is the device lifecycle state.
type State uint8

const (
	// StateIdle - created, loop not running.
	StateIdle State = iota

	// StateRunning - serving host requests.
	StateRunning

	// StateHalted - wiped after too many wrong PINs; terminal.
	StateHalted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StateHalted:
		return "HALTED"
	default:
		return "UNKNOWN"
	}
}

// Config configures a Device.
type Config struct {
	// Logger for operational output (optional, nil disables).
	Logger *slog.Logger

	// EventLog receives lifecycle events (optional).
	EventLog log.Logger
}

// Deps are the collaborators a Device drives.
type Deps struct {
	Source  input.Source
	Handler Handler
	Aborts  AbortFlag
	Display display.Display
}

// Device is the outer request loop.
type Device struct {
	config Config
	deps   Deps

	mu    sync.RWMutex
	state State
}

// New creates a Device.
func New(config Config, deps Deps) *Device {
	return &Device{config: config, deps: deps}
}

// State returns the current lifecycle state.
func (d *Device) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

func (d *Device) setState(s State, reason string) {
	d.mu.Lock()
	old := d.state
	d.state = s
	d.mu.Unlock()

	if d.config.EventLog != nil {
		d.config.EventLog.Log(log.NewStateEvent(log.LayerDispatch, log.StateEntityDevice, old.String(), s.String(), reason))
	}
}

// Run serves requests until ctx is done, the source fails or the device
// halts. It returns protect.ErrHalted once the device has wiped itself, and
// keeps returning it on every later call.
func (d *Device) Run(ctx context.Context) error {
	switch d.State() {
	case StateHalted:
		return protect.ErrHalted
	case StateRunning:
		return ErrRunning
	}
	d.setState(StateRunning, "run")

	if d.deps.Display != nil {
		d.deps.Display.Home()
	}

	for {
		ev, err := d.deps.Source.Next(ctx)
		if err != nil {
			d.setState(StateIdle, "input ended")
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("device: input: %w", err)
		}
		if ev.Kind != input.HostMessage {
			continue
		}

		if err := d.serve(ctx, ev.Message); err != nil {
			return err
		}
	}
}

// serve dispatches msg and replays Initialize after an aborted gate.
func (d *Device) serve(ctx context.Context, msg wire.Message) error {
	err := d.deps.Handler.Handle(ctx, msg)
	for err == nil && d.deps.Aborts != nil && d.deps.Aborts.TakeAborted() {
		d.debugLog("replaying Initialize after aborted gate")
		err = d.deps.Handler.Handle(ctx, &wire.Initialize{})
	}

	switch {
	case errors.Is(err, protect.ErrHalted):
		d.setState(StateHalted, "pin lockout exhausted")
		return protect.ErrHalted
	case err != nil:
		if d.config.Logger != nil {
			d.config.Logger.Warn("request not answered", "type", msg.MessageType(), "error", err)
		}
	}
	return nil
}

// debugLog logs a debug message if logging is enabled.
func (d *Device) debugLog(msg string, args ...any) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, args...)
	}
}
