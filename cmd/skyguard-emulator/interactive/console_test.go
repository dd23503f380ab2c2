package interactive

import (
	"context"
	"testing"

	"github.com/skyguard-wallet/skyguard-go/pkg/input"
)

func TestExecButtons(t *testing.T) {
	buttons := make(chan input.Button, 2)
	c := &Console{buttons: buttons}
	ctx := context.Background()

	if !c.exec(ctx, "y") || !c.exec(ctx, "NO") {
		t.Fatal("button commands should keep the console running")
	}
	if got := <-buttons; got != input.ButtonYes {
		t.Errorf("first press = %s, want YES", got)
	}
	if got := <-buttons; got != input.ButtonNo {
		t.Errorf("second press = %s, want NO", got)
	}
	if !c.exec(ctx, "") {
		t.Error("empty line should be ignored")
	}
}

func TestExecQuit(t *testing.T) {
	c := &Console{}
	for _, cmd := range []string{"quit", "exit", "q"} {
		if c.exec(context.Background(), cmd) {
			t.Errorf("%q should stop the console", cmd)
		}
	}
}

func TestPressCancelled(t *testing.T) {
	c := &Console{buttons: make(chan input.Button)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c.press(ctx, input.ButtonYes)
}
