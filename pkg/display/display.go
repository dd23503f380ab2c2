// Package display renders device screens.
package display

import (
	"fmt"
	"strings"

	"github.com/skyguard-wallet/skyguard-go/pkg/lockout"
)

// Kind identifies a screen layout.
type Kind uint8

const (
	KindHome Kind = iota
	KindDialog
	KindAddress
	KindCountdown
	KindPinMatrix
	KindNotice
)

// String returns the layout name.
func (k Kind) String() string {
	switch k {
	case KindHome:
		return "HOME"
	case KindDialog:
		return "DIALOG"
	case KindAddress:
		return "ADDRESS"
	case KindCountdown:
		return "COUNTDOWN"
	case KindPinMatrix:
		return "PIN_MATRIX"
	case KindNotice:
		return "NOTICE"
	default:
		return "UNKNOWN"
	}
}

// Screen is one rendered layout. No and Yes label the buttons; empty hides them.
type Screen struct {
	Kind  Kind
	No    string
	Yes   string
	Lines []string
}

// Text joins the screen lines.
func (s Screen) Text() string {
	return strings.Join(s.Lines, "\n")
}

// Display is the output surface used by the gates and the dispatcher.
type Display interface {
	Home()
	Dialog(s Screen)
	Address(addr string)
	Countdown(secs uint64)
	PinMatrix(prompt, layout string)
	Notify(text string)
}

// HomeScreen is the idle layout.
func HomeScreen(label string) Screen {
	if label == "" {
		label = "SkyGuard"
	}
	return Screen{Kind: KindHome, Lines: []string{label}}
}

// DialogScreen builds a confirmation layout.
func DialogScreen(no, yes string, lines ...string) Screen {
	return Screen{Kind: KindDialog, No: no, Yes: yes, Lines: lines}
}

// AddressScreen shows an address with its QR payload.
func AddressScreen(addr string) Screen {
	return Screen{
		Kind:  KindAddress,
		No:    "Cancel",
		Yes:   "Confirm",
		Lines: []string{addr, "qr: skycoin:" + addr},
	}
}

// CountdownScreen shows the wrong-PIN wait.
func CountdownScreen(secs uint64) Screen {
	return Screen{
		Kind: KindCountdown,
		Lines: []string{
			"Wrong PIN entered",
			"Please wait",
			lockout.FormatWait(secs),
			"to continue ...",
		},
	}
}

// PinMatrixScreen shows the scrambled keypad.
func PinMatrixScreen(prompt, layout string) Screen {
	lines := append([]string{prompt}, strings.Split(layout, "\n")...)
	return Screen{Kind: KindPinMatrix, Lines: lines}
}

// NoticeScreen shows a single message without buttons.
func NoticeScreen(text string) Screen {
	return Screen{Kind: KindNotice, Lines: strings.Split(text, "\n")}
}

func (s Screen) String() string {
	buttons := ""
	if s.No != "" || s.Yes != "" {
		buttons = fmt.Sprintf(" [%s | %s]", s.No, s.Yes)
	}
	return fmt.Sprintf("%s: %s%s", s.Kind, strings.Join(s.Lines, " / "), buttons)
}
