package input

import (
	"context"
	"sync"
	"time"

	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// DefaultTickInterval is the countdown resolution.
const DefaultTickInterval = time.Second

// MuxConfig configures a Mux.
type MuxConfig struct {
	// TickInterval is the period of TimerTick events. Zero uses DefaultTickInterval.
	TickInterval time.Duration
}

// Mux is a Source reading from a host message channel, a button channel and
// a ticker. When several are ready at once, host messages win over buttons
// and buttons win over ticks.
type Mux struct {
	host    <-chan wire.Message
	buttons  <-chan Button
	ticker   *time.Ticker
	interval time.Duration

	closeOnce sync.Once
}

// NewMux creates a Mux. A nil buttons channel means no physical buttons.
// The host channel closing ends the stream with ErrClosed.
func NewMux(host <-chan wire.Message, buttons <-chan Button, cfg MuxConfig) *Mux {
	interval := cfg.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Mux{
		host:     host,
		buttons:  buttons,
		ticker:   time.NewTicker(interval),
		interval: interval,
	}
}

// Next implements Source.
func (m *Mux) Next(ctx context.Context) (Event, error) {
	// Drain in priority order before blocking.
	select {
	case msg, ok := <-m.host:
		return m.hostEvent(msg, ok)
	default:
	}
	select {
	case b := <-m.buttons:
		return Press(b), nil
	default:
	}

	select {
	case <-ctx.Done():
		return Event{}, ctx.Err()
	case msg, ok := <-m.host:
		return m.hostEvent(msg, ok)
	case b := <-m.buttons:
		return Press(b), nil
	case <-m.ticker.C:
		return Tick(), nil
	}
}

func (m *Mux) hostEvent(msg wire.Message, ok bool) (Event, error) {
	if !ok {
		return Event{}, ErrClosed
	}
	return Host(msg), nil
}

// ResetTicks restarts the tick phase and discards a tick that is already
// pending.
func (m *Mux) ResetTicks() {
	m.ticker.Reset(m.interval)
	select {
	case <-m.ticker.C:
	default:
	}
}

// Close stops the ticker.
func (m *Mux) Close() {
	m.closeOnce.Do(m.ticker.Stop)
}

var _ TickResetter = (*Mux)(nil)
