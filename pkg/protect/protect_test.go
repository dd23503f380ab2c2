package protect

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/skyguard-wallet/skyguard-go/pkg/display"
	"github.com/skyguard-wallet/skyguard-go/pkg/errcode"
	"github.com/skyguard-wallet/skyguard-go/pkg/input"
	"github.com/skyguard-wallet/skyguard-go/pkg/log"
	"github.com/skyguard-wallet/skyguard-go/pkg/session"
	"github.com/skyguard-wallet/skyguard-go/pkg/storage"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

const testPin = "1357"

// recordingSender captures everything sent to the host.
type recordingSender struct {
	mu   sync.Mutex
	msgs []wire.Message
}

func (s *recordingSender) Send(msg wire.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *recordingSender) Messages() []wire.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]wire.Message(nil), s.msgs...)
}

func (s *recordingSender) Types() []wire.MessageType {
	var types []wire.MessageType
	for _, m := range s.Messages() {
		types = append(types, m.MessageType())
	}
	return types
}

// countingStore counts PIN attempts recorded.
type countingStore struct {
	*storage.Store
	increments int
}

func (c *countingStore) IncrementPinFails() error {
	c.increments++
	return c.Store.IncrementPinFails()
}

// scriptedPrompter returns queued entries and counts prompts.
type scriptedPrompter struct {
	entries []string
	errs    []error
	calls   int
	kinds   []wire.PinMatrixRequestType
	onCall  func()
}

func (s *scriptedPrompter) RequestPin(_ context.Context, kind wire.PinMatrixRequestType, _ string) (string, error) {
	s.calls++
	s.kinds = append(s.kinds, kind)
	if s.onCall != nil {
		s.onCall()
	}
	i := s.calls - 1
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.entries) {
		return s.entries[i], nil
	}
	return s.entries[len(s.entries)-1], nil
}

type fixture struct {
	p        *Protector
	store    *countingStore
	sess     *session.Session
	script   *input.Script
	out      *recordingSender
	disp     *display.Recorder
	prompter *scriptedPrompter
	events   *log.MemoryLogger
	halts    int
}

func newFixture(t *testing.T, config Config, events ...input.Event) *fixture {
	t.Helper()
	f := &fixture{
		store:    &countingStore{Store: storage.NewMemoryStore()},
		sess:     &session.Session{},
		script:   input.NewScript(events...),
		out:      &recordingSender{},
		disp:     display.NewRecorder(),
		prompter: &scriptedPrompter{entries: []string{testPin}},
		events:   &log.MemoryLogger{},
	}
	config.EventLog = f.events
	f.p = New(config, Deps{
		Source:   f.script,
		Sender:   f.out,
		Display:  f.disp,
		Store:    f.store,
		Session:  f.sess,
		Prompter: f.prompter,
		Halt:     func(context.Context) { f.halts++ },
	})
	return f
}

func (f *fixture) setPin(t *testing.T) {
	t.Helper()
	if err := f.store.SetPin(testPin); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) setFails(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := f.store.Store.IncrementPinFails(); err != nil {
			t.Fatal(err)
		}
	}
}

func ticks(n uint64) []input.Event {
	evs := make([]input.Event, n)
	for i := range evs {
		evs[i] = input.Tick()
	}
	return evs
}

func failureCode(t *testing.T, msg wire.Message) wire.FailureType {
	t.Helper()
	f, ok := msg.(*wire.Failure)
	if !ok {
		t.Fatalf("message = %T, want *wire.Failure", msg)
	}
	return f.Code
}

func TestGateEventsLogged(t *testing.T) {
	f := newFixture(t, DefaultConfig(), input.Host(&wire.ButtonAck{}), input.Press(input.ButtonYes))

	if _, err := f.p.Button(context.Background(), wire.ButtonRequestProtectCall, false); err != nil {
		t.Fatal(err)
	}

	evs := f.events.Events()
	if len(evs) != 2 {
		t.Fatalf("got %d events, want 2", len(evs))
	}
	if evs[0].Gate.Phase != log.GateStarted || evs[1].Gate.Phase != log.GateResolved {
		t.Errorf("phases = %v, %v", evs[0].Gate.Phase, evs[1].Gate.Phase)
	}
	if evs[1].Gate.Outcome != "CONFIRMED" || evs[1].Gate.Purpose != "PROTECT_CALL" {
		t.Errorf("resolved event = %+v", evs[1].Gate)
	}
}

func TestTakeAborted(t *testing.T) {
	f := newFixture(t, DefaultConfig(), input.Host(&wire.Initialize{}))

	ok, err := f.p.Button(context.Background(), wire.ButtonRequestOther, false)
	if err != nil || ok {
		t.Fatalf("Button() = %v, %v; want false, nil", ok, err)
	}
	if !f.p.AbortedByInitialize() {
		t.Fatal("AbortedByInitialize() = false after Initialize")
	}
	if !f.p.TakeAborted() {
		t.Error("TakeAborted() = false, want true")
	}
	if f.p.AbortedByInitialize() || f.p.TakeAborted() {
		t.Error("flag survived TakeAborted()")
	}
}

func TestSourceErrorPropagates(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	_, err := f.p.Button(context.Background(), wire.ButtonRequestOther, false)
	if !errors.Is(err, input.ErrScriptExhausted) {
		t.Errorf("Button() error = %v, want ErrScriptExhausted", err)
	}
}

func TestTrackedDisplayLayout(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.p.Display().Address("2EU3JbveHdkxW6z5tdhbbB2kRAWvXC2pLzw")

	st := f.p.debugState()
	if !strings.Contains(st.Layout, "2EU3JbveHdkxW6z5tdhbbB2kRAWvXC2pLzw") {
		t.Errorf("Layout = %q", st.Layout)
	}
	if f.disp.Last().Kind != display.KindAddress {
		t.Error("wrapped display was not drawn")
	}
}

func TestHaltedGatesRefuse(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.setPin(t)
	f.setFails(t, 15)

	if err := f.p.Pin(context.Background(), false); !errors.Is(err, ErrHalted) {
		t.Fatalf("Pin() = %v, want ErrHalted", err)
	}
	if _, err := f.p.Button(context.Background(), wire.ButtonRequestOther, false); !errors.Is(err, ErrHalted) {
		t.Errorf("Button() = %v, want ErrHalted", err)
	}
	if err := f.p.Passphrase(context.Background()); !errors.Is(err, ErrHalted) {
		t.Errorf("Passphrase() = %v, want ErrHalted", err)
	}
	if len(f.out.Messages()) != 0 {
		t.Errorf("halted device sent %v", f.out.Types())
	}
	if errcode.From(ErrHalted) != errcode.Failed {
		t.Error("ErrHalted must not map to a response code")
	}
}

func TestDebugLinkEnabled(t *testing.T) {
	if newFixture(t, DefaultConfig()).p.DebugLinkEnabled() {
		t.Error("debug link enabled by default")
	}
	if got := newFixture(t, Config{DebugLink: true}).p.DebugLinkEnabled(); got != debugLinkBuild {
		t.Errorf("DebugLinkEnabled() = %v, want %v for this build", got, debugLinkBuild)
	}
}
