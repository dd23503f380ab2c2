// Package session holds the ephemeral per-power-cycle credential cache.
//
// Nothing here is persisted. A Session lives exactly as long as the running
// device instance; a reset or power loss starts from a zero Session.
package session

import "fmt"

// Secret holds sensitive bytes. It never prints its contents.
type Secret struct {
	b []byte
}

// NewSecret copies s into a Secret.
func NewSecret(s string) Secret {
	return Secret{b: []byte(s)}
}

// Reveal returns the secret as a string. Callers must not log it.
func (s Secret) Reveal() string {
	return string(s.b)
}

// Len returns the secret length in bytes.
func (s Secret) Len() int {
	return len(s.b)
}

// Wipe zeroes the backing bytes.
func (s *Secret) Wipe() {
	for i := range s.b {
		s.b[i] = 0
	}
	s.b = nil
}

// String implements fmt.Stringer without exposing the secret.
func (Secret) String() string { return "[redacted]" }

// GoString implements fmt.GoStringer without exposing the secret.
func (Secret) GoString() string { return "session.Secret{[redacted]}" }

// Format implements fmt.Formatter so that every verb is redacted.
func (s Secret) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		fmt.Fprint(f, s.GoString())
		return
	}
	fmt.Fprint(f, s.String())
}

// Session is the credential cache. The zero value is a fresh session.
//
// Session is owned by a single dispatcher and is not safe for concurrent
// mutation.
type Session struct {
	pinVerified bool
	passphrase  *Secret
}

// New returns a fresh session.
func New() *Session {
	return &Session{}
}

// PinVerified reports whether the PIN was verified during this power cycle.
func (s *Session) PinVerified() bool {
	return s.pinVerified
}

// SetPinVerified records a successful PIN comparison.
func (s *Session) SetPinVerified() {
	s.pinVerified = true
}

// PassphraseCached reports whether a passphrase was supplied this session.
func (s *Session) PassphraseCached() bool {
	return s.passphrase != nil
}

// Passphrase returns the cached passphrase.
func (s *Session) Passphrase() (Secret, bool) {
	if s.passphrase == nil {
		return Secret{}, false
	}
	return *s.passphrase, true
}

// CachePassphrase stores p (possibly empty) for the rest of the session.
func (s *Session) CachePassphrase(p string) {
	s.ClearPassphrase()
	secret := NewSecret(p)
	s.passphrase = &secret
}

// ClearPassphrase drops the cached passphrase.
func (s *Session) ClearPassphrase() {
	if s.passphrase != nil {
		s.passphrase.Wipe()
		s.passphrase = nil
	}
}

// Clear drops the passphrase and, unless keepPin is set, the PIN state.
func (s *Session) Clear(keepPin bool) {
	s.ClearPassphrase()
	if !keepPin {
		s.pinVerified = false
	}
}
