package log

// MultiLogger fans each event out to a fixed set of sinks, typically the
// .glog file and the console adapter.
type MultiLogger struct {
	sinks []Logger
}

// NewMultiLogger returns a MultiLogger over the given sinks. Nil entries are
// dropped so optional sinks can be passed unconditionally.
func NewMultiLogger(sinks ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Len returns the number of sinks.
func (m *MultiLogger) Len() int { return len(m.sinks) }

func (m *MultiLogger) Log(event Event) {
	for _, s := range m.sinks {
		s.Log(event)
	}
}

var _ Logger = (*MultiLogger)(nil)
