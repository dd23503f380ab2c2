package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

func newTestSlog(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestSlogAdapterGateEvent(t *testing.T) {
	var buf bytes.Buffer
	NewSlogAdapter(newTestSlog(&buf)).Log(NewGateEvent(GateButton, GateResolved, "SIGN_TX", "DENIED"))

	out := buf.String()
	for _, want := range []string{"gate=BUTTON", "phase=RESOLVED", "purpose=SIGN_TX", "outcome=DENIED"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestSlogAdapterMessageEvent(t *testing.T) {
	var buf bytes.Buffer
	NewSlogAdapter(newTestSlog(&buf)).Log(NewMessageEvent("conn-9", DirectionOut, &wire.Failure{Code: wire.FailurePinCancelled}))

	out := buf.String()
	for _, want := range []string{"conn_id=conn-9", "msg_type=Failure", "failure=PIN_CANCELLED"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestSlogAdapterNeverPrintsPassphrase(t *testing.T) {
	var buf bytes.Buffer
	NewSlogAdapter(newTestSlog(&buf)).Log(NewMessageEvent("", DirectionIn, &wire.PassphraseAck{Passphrase: "correct horse"}))

	if strings.Contains(buf.String(), "correct horse") {
		t.Errorf("passphrase leaked: %q", buf.String())
	}
}

func TestSlogAdapterLevels(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{"GateStarted", NewGateEvent(GatePin, GateStarted, "CURRENT", ""), "level=DEBUG msg=gate"},
		{"GateResolved", NewGateEvent(GatePin, GateResolved, "CURRENT", "ENTERED"), "level=INFO msg=gate"},
		{"Failure", NewMessageEvent("", DirectionOut, &wire.Failure{Code: wire.FailurePinInvalid}), "level=WARN msg=message"},
		{"Success", NewMessageEvent("", DirectionOut, &wire.Success{}), "level=DEBUG msg=message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewSlogAdapter(newTestSlog(&buf)).Log(tt.event)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
		})
	}
}
