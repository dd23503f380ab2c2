package storage

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"
)

const (
	pinSaltSize   = 16
	pinIterations = 10000
	pinKeySize    = 32
)

// Storage errors.
var (
	ErrMnemonicSet   = errors.New("storage: mnemonic already set")
	ErrEmptyMnemonic = errors.New("storage: empty mnemonic")
)

// CredentialStore is the persisted-secret service consumed by the gates and
// the dispatcher.
type CredentialStore interface {
	HasPin() bool
	// PinMatches compares candidate against the stored verifier in constant time.
	PinMatches(candidate string) bool
	// SetPin replaces the PIN; an empty pin removes it.
	SetPin(pin string) error

	PinFails() uint32
	// IncrementPinFails records one attempt. It returns only after the new
	// count has been persisted.
	IncrementPinFails() error
	ResetPinFails() error

	PassphraseProtection() bool
	SetPassphraseProtection(enabled bool) error

	HasMnemonic() bool
	Mnemonic() string
	SetMnemonic(mnemonic string) error

	Label() string
	SetLabel(label string) error
	DeviceID() string

	// Wipe erases every credential. It cannot be undone.
	Wipe() error
}

// Store is the CredentialStore implementation backed by a Persister.
type Store struct {
	mu  sync.Mutex
	p   Persister
	rec *Record
}

var _ CredentialStore = (*Store)(nil)

// NewStore loads the record from p, initializing a fresh one if none exists.
func NewStore(p Persister) (*Store, error) {
	rec, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	s := &Store{p: p, rec: rec}
	if rec == nil {
		s.rec = freshRecord()
		if err := p.Save(s.rec); err != nil {
			return nil, fmt.Errorf("save record: %w", err)
		}
	}
	return s, nil
}

// NewFileStore opens the JSON record at path.
func NewFileStore(path string) (*Store, error) {
	return NewStore(NewFilePersister(path))
}

// NewMemoryStore returns a store that is never written to disk.
func NewMemoryStore() *Store {
	s, _ := NewStore(&MemoryPersister{})
	return s
}

func freshRecord() *Record {
	return &Record{
		Version:  RecordVersion,
		DeviceID: newDeviceID(),
	}
}

func newDeviceID() string {
	id := uuid.New()
	return fmt.Sprintf("%X", id[:12])
}

// update applies fn to a copy of the record and persists it. The in-memory
// record changes only if the save succeeds.
func (s *Store) update(fn func(r *Record)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.rec.clone()
	fn(next)
	if err := s.p.Save(next); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	s.rec = next
	return nil
}

func (s *Store) read(fn func(r *Record)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.rec)
}

// HasPin reports whether a PIN is set.
func (s *Store) HasPin() (ok bool) {
	s.read(func(r *Record) { ok = len(r.PinHash) > 0 })
	return
}

// PinMatches reports whether candidate is the stored PIN. It is false when no PIN is set.
func (s *Store) PinMatches(candidate string) bool {
	var salt, want []byte
	s.read(func(r *Record) {
		salt = append([]byte(nil), r.PinSalt...)
		want = append([]byte(nil), r.PinHash...)
	})
	if len(want) == 0 {
		return false
	}
	got := hashPin(candidate, salt)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// SetPin stores a new PIN verifier under a fresh salt.
func (s *Store) SetPin(pin string) error {
	if pin == "" {
		return s.update(func(r *Record) {
			r.PinSalt = nil
			r.PinHash = nil
		})
	}
	salt := make([]byte, pinSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("pin salt: %w", err)
	}
	hash := hashPin(pin, salt)
	return s.update(func(r *Record) {
		r.PinSalt = salt
		r.PinHash = hash
	})
}

func hashPin(pin string, salt []byte) []byte {
	return pbkdf2.Key([]byte(pin), salt, pinIterations, pinKeySize, sha256.New)
}

// PinFails returns the number of unverified PIN attempts.
func (s *Store) PinFails() (n uint32) {
	s.read(func(r *Record) { n = r.PinFails })
	return
}

// IncrementPinFails persists one more attempt. On error the counter is unchanged.
func (s *Store) IncrementPinFails() error {
	return s.update(func(r *Record) {
		if r.PinFails < ^uint32(0) {
			r.PinFails++
		}
	})
}

// ResetPinFails clears the attempt counter.
func (s *Store) ResetPinFails() error {
	return s.update(func(r *Record) { r.PinFails = 0 })
}

// PassphraseProtection reports whether key derivation needs a passphrase.
func (s *Store) PassphraseProtection() (on bool) {
	s.read(func(r *Record) { on = r.PassphraseProtection })
	return
}

// SetPassphraseProtection toggles the passphrase requirement.
func (s *Store) SetPassphraseProtection(enabled bool) error {
	return s.update(func(r *Record) { r.PassphraseProtection = enabled })
}

// HasMnemonic reports whether the device holds a seed.
func (s *Store) HasMnemonic() (ok bool) {
	s.read(func(r *Record) { ok = r.Mnemonic != "" })
	return
}

// Mnemonic returns the stored phrase, or "" when none is set.
func (s *Store) Mnemonic() (m string) {
	s.read(func(r *Record) { m = r.Mnemonic })
	return
}

// SetMnemonic stores the recovery phrase. It fails if one is already set.
func (s *Store) SetMnemonic(mnemonic string) error {
	if mnemonic == "" {
		return ErrEmptyMnemonic
	}
	if s.HasMnemonic() {
		return ErrMnemonicSet
	}
	return s.update(func(r *Record) { r.Mnemonic = mnemonic })
}

// Label returns the device label.
func (s *Store) Label() (l string) {
	s.read(func(r *Record) { l = r.Label })
	return
}

// SetLabel renames the device.
func (s *Store) SetLabel(label string) error {
	return s.update(func(r *Record) { r.Label = label })
}

// DeviceID returns the identifier assigned at the last wipe.
func (s *Store) DeviceID() (id string) {
	s.read(func(r *Record) { id = r.DeviceID })
	return
}

// Wipe clears the persisted record and starts over with a new device ID.
// The in-memory record is reset even if the persister fails.
func (s *Store) Wipe() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	zero(s.rec.PinHash)
	zero(s.rec.PinSalt)
	s.rec = freshRecord()

	if err := s.p.Clear(); err != nil {
		return fmt.Errorf("clear record: %w", err)
	}
	if err := s.p.Save(s.rec.clone()); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
