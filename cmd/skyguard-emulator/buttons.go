package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/skyguard-wallet/skyguard-go/pkg/display"
	"github.com/skyguard-wallet/skyguard-go/pkg/input"
)

// parseButtons reads a headless button script such as "y,n,y" or "yes no".
func parseButtons(script string) ([]input.Button, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' '
	})
	presses := make([]input.Button, 0, len(fields))
	for _, f := range fields {
		switch strings.ToLower(f) {
		case "y", "yes":
			presses = append(presses, input.ButtonYes)
		case "n", "no":
			presses = append(presses, input.ButtonNo)
		default:
			return nil, fmt.Errorf("invalid button %q in script (want y or n)", f)
		}
	}
	return presses, nil
}

// scriptedButtons presses the next scripted button whenever a confirmation
// screen is drawn. Once the script is used up it stops pressing.
type scriptedButtons struct {
	display.Display

	mu      sync.Mutex
	presses []input.Button
	out     chan<- input.Button
}

func newScriptedButtons(d display.Display, presses []input.Button, out chan<- input.Button) *scriptedButtons {
	return &scriptedButtons{Display: d, presses: presses, out: out}
}

func (s *scriptedButtons) Dialog(screen display.Screen) {
	s.Display.Dialog(screen)
	s.press()
}

func (s *scriptedButtons) Address(addr string) {
	s.Display.Address(addr)
	s.press()
}

// Remaining returns the number of presses not yet used.
func (s *scriptedButtons) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.presses)
}

func (s *scriptedButtons) press() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.presses) == 0 {
		return
	}
	select {
	case s.out <- s.presses[0]:
		s.presses = s.presses[1:]
	default:
	}
}
