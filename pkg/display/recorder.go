package display

import "sync"

// Recorder keeps every screen in memory.
type Recorder struct {
	mu      sync.Mutex
	screens []Screen
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Home()                           { r.add(HomeScreen("")) }
func (r *Recorder) Dialog(s Screen)                 { r.add(s) }
func (r *Recorder) Address(addr string)             { r.add(AddressScreen(addr)) }
func (r *Recorder) Countdown(secs uint64)           { r.add(CountdownScreen(secs)) }
func (r *Recorder) PinMatrix(prompt, layout string) { r.add(PinMatrixScreen(prompt, layout)) }
func (r *Recorder) Notify(text string)              { r.add(NoticeScreen(text)) }

func (r *Recorder) add(s Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screens = append(r.screens, s)
}

// Screens returns a copy of everything rendered so far.
func (r *Recorder) Screens() []Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Screen, len(r.screens))
	copy(out, r.screens)
	return out
}

// Last returns the latest screen, or a zero Screen if nothing was drawn.
func (r *Recorder) Last() Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.screens) == 0 {
		return Screen{}
	}
	return r.screens[len(r.screens)-1]
}

// Count returns how many screens of kind k were drawn.
func (r *Recorder) Count(k Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.screens {
		if s.Kind == k {
			n++
		}
	}
	return n
}

// Reset forgets recorded screens.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screens = nil
}
