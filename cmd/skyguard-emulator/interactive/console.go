// Package interactive provides the button console of the emulator.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/skyguard-wallet/skyguard-go/pkg/input"
)

// StatusFunc reports the emulator state for the status command.
type StatusFunc func() []string

// Console reads physical button presses from the terminal.
type Console struct {
	rl      *readline.Instance
	buttons chan<- input.Button
	status  StatusFunc
}

// New creates a console that delivers presses on buttons.
func New(buttons chan<- input.Button, status StatusFunc) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "skyguard> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Console{rl: rl, buttons: buttons, status: status}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log and screen output to avoid interfering with the prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Run starts the command loop. quit is called on "quit" or end of input.
func (c *Console) Run(ctx context.Context, quit context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			quit()
			return
		}

		if !c.exec(ctx, strings.TrimSpace(line)) {
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			quit()
			return
		}
	}
}

// exec runs one command line. It returns false when the console should stop.
func (c *Console) exec(ctx context.Context, line string) bool {
	if line == "" {
		return true
	}
	switch strings.ToLower(strings.Fields(line)[0]) {
	case "y", "yes":
		c.press(ctx, input.ButtonYes)
	case "n", "no":
		c.press(ctx, input.ButtonNo)
	case "status", "s":
		c.cmdStatus()
	case "help", "?":
		c.printHelp()
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", line)
	}
	return true
}

func (c *Console) press(ctx context.Context, b input.Button) {
	select {
	case c.buttons <- b:
	case <-ctx.Done():
	}
}

func (c *Console) cmdStatus() {
	if c.status == nil {
		return
	}
	for _, l := range c.status() {
		fmt.Fprintln(c.rl.Stdout(), l)
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `
SkyGuard Emulator Commands:
  Buttons:
    y, yes             - Press the confirm button
    n, no              - Press the cancel button

  General:
    status             - Show device status
    help               - Show this help
    quit               - Exit emulator`)
}
