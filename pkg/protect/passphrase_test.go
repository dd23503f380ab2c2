package protect

import (
	"context"
	"errors"
	"testing"

	"github.com/skyguard-wallet/skyguard-go/pkg/display"
	"github.com/skyguard-wallet/skyguard-go/pkg/errcode"
	"github.com/skyguard-wallet/skyguard-go/pkg/input"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

func TestPassphraseOff(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	if err := f.p.Passphrase(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(f.out.Messages()) != 0 {
		t.Errorf("sent %v with protection off", f.out.Types())
	}
}

func TestPassphraseCollect(t *testing.T) {
	tests := []struct {
		name string
		ack  *wire.PassphraseAck
	}{
		{"NonEmpty", &wire.PassphraseAck{Passphrase: "TREZOR", HasPassphrase: true}},
		{"Empty", &wire.PassphraseAck{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, DefaultConfig(), input.Tick(), input.Press(input.ButtonYes), input.Host(tt.ack))
			if err := f.store.SetPassphraseProtection(true); err != nil {
				t.Fatal(err)
			}

			if err := f.p.Passphrase(context.Background()); err != nil {
				t.Fatalf("Passphrase() = %v", err)
			}

			if types := f.out.Types(); len(types) != 1 || types[0] != wire.MessageTypePassphraseRequest {
				t.Errorf("sent %v, want one PassphraseRequest", types)
			}
			got, ok := f.sess.Passphrase()
			if !ok || got.Reveal() != tt.ack.Passphrase {
				t.Errorf("cached passphrase = %v, %v", ok, got.Len())
			}
			if f.disp.Last().Kind != display.KindHome {
				t.Errorf("last screen = %v, want home", f.disp.Last().Kind)
			}
		})
	}
}

func TestPassphraseAlreadyCached(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	_ = f.store.SetPassphraseProtection(true)
	f.sess.CachePassphrase("")

	if err := f.p.Passphrase(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(f.out.Messages()) != 0 {
		t.Error("cached passphrase requested again")
	}
}

func TestPassphraseCancelled(t *testing.T) {
	tests := []struct {
		name    string
		event   input.Event
		aborted bool
	}{
		{"Cancel", input.Host(&wire.Cancel{}), false},
		{"Initialize", input.Host(&wire.Initialize{}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, DefaultConfig(), tt.event)
			_ = f.store.SetPassphraseProtection(true)

			err := f.p.Passphrase(context.Background())
			if !errors.Is(err, errcode.ActionCancelled) {
				t.Fatalf("Passphrase() = %v, want ActionCancelled", err)
			}
			if f.sess.PassphraseCached() {
				t.Error("passphrase cached after cancel")
			}
			if f.p.AbortedByInitialize() != tt.aborted {
				t.Errorf("aborted = %v, want %v", f.p.AbortedByInitialize(), tt.aborted)
			}
		})
	}
}
