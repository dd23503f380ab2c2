package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Console draws screens as text boxes on an io.Writer.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	label func() string
	last  Screen
}

// NewConsole creates a console display. label supplies the home screen text
// and may be nil.
func NewConsole(w io.Writer, label func() string) *Console {
	return &Console{w: w, label: label}
}

func (c *Console) Home() {
	l := ""
	if c.label != nil {
		l = c.label()
	}
	c.render(HomeScreen(l))
}

func (c *Console) Dialog(s Screen)                 { c.render(s) }
func (c *Console) Address(addr string)             { c.render(AddressScreen(addr)) }
func (c *Console) Countdown(secs uint64)           { c.render(CountdownScreen(secs)) }
func (c *Console) PinMatrix(prompt, layout string) { c.render(PinMatrixScreen(prompt, layout)) }
func (c *Console) Notify(text string)              { c.render(NoticeScreen(text)) }

// Last returns the most recently drawn screen.
func (c *Console) Last() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *Console) render(s Screen) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = s

	width := 24
	for _, l := range s.Lines {
		if len(l) > width {
			width = len(l)
		}
	}
	border := "+" + strings.Repeat("-", width+2) + "+"

	var b strings.Builder
	b.WriteString(border + "\n")
	for _, l := range s.Lines {
		fmt.Fprintf(&b, "| %-*s |\n", width, l)
	}
	if s.No != "" || s.Yes != "" {
		gap := width - len(s.No) - len(s.Yes)
		if gap < 1 {
			gap = 1
		}
		fmt.Fprintf(&b, "| %s%s%s |\n", s.No, strings.Repeat(" ", gap), s.Yes)
	}
	b.WriteString(border + "\n")
	_, _ = io.WriteString(c.w, b.String())
}
