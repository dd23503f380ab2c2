package commands

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/skyguard-wallet/skyguard-go/pkg/log"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

func readAll(t *testing.T, path string) []log.Event {
	t.Helper()
	r, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer r.Close()

	var events []log.Event
	for {
		ev, err := r.Next()
		if err == io.EOF {
			return events
		}
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		events = append(events, ev)
	}
}

func TestRunFilter(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, []log.Event{
		at(log.NewMessageEvent("conn-1", log.DirectionIn, &wire.Initialize{}), ts),
		at(log.NewMessageEvent("conn-2", log.DirectionIn, &wire.Initialize{}), ts.Add(time.Minute)),
		at(log.NewGateEvent(log.GatePassphrase, log.GateStarted, "", ""), ts.Add(2*time.Minute)),
		at(log.NewGateEvent(log.GateButton, log.GateStarted, "OTHER", ""), ts.Add(3*time.Minute)),
	})

	tests := []struct {
		name string
		opts FilterOptions
		want int
	}{
		{"ConnID", FilterOptions{ConnID: "conn-2"}, 1},
		{"Gate", FilterOptions{Gate: "passphrase"}, 1},
		{"Category", FilterOptions{Category: "gate"}, 2},
		{"TimeWindow", FilterOptions{TimeStart: "2026-01-28T10:01:00Z", TimeEnd: "2026-01-28T10:03:00Z"}, 2},
		{"None", FilterOptions{}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Output = filepath.Join(t.TempDir(), "out.glog")
			var buf bytes.Buffer
			if err := RunFilter(path, tt.opts, &buf); err != nil {
				t.Fatalf("RunFilter failed: %v", err)
			}
			if got := len(readAll(t, tt.opts.Output)); got != tt.want {
				t.Errorf("filtered %d events, want %d", got, tt.want)
			}
			if !strings.HasPrefix(buf.String(), "Filtered ") {
				t.Errorf("unexpected summary: %q", buf.String())
			}
		})
	}
}

func TestRunFilterInvalidOptions(t *testing.T) {
	path := createTestLogFile(t, nil)
	out := filepath.Join(t.TempDir(), "out.glog")

	for _, opts := range []FilterOptions{
		{Output: out, Layer: "service"},
		{Output: out, Direction: "sideways"},
		{Output: out, Category: "snapshot"},
		{Output: out, Gate: "face-id"},
		{Output: out, TimeStart: "yesterday"},
	} {
		if err := RunFilter(path, opts, io.Discard); err == nil {
			t.Errorf("RunFilter(%+v) should fail", opts)
		}
	}
}
