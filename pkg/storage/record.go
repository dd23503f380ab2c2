package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RecordVersion is the current version of the record file format.
const RecordVersion = 1

// ErrUnsupportedVersion is returned when a record was written by a newer format.
var ErrUnsupportedVersion = errors.New("storage: unsupported record version")

// Record is the persisted device state.
type Record struct {
	// Version is the record file format version.
	Version int `json:"version"`

	// SavedAt is when the record was last saved.
	SavedAt time.Time `json:"saved_at"`

	// DeviceID is regenerated on every wipe.
	DeviceID string `json:"device_id"`

	// Label is the user-chosen device name.
	Label string `json:"label,omitempty"`

	// PinSalt and PinHash form the PIN verifier. Both are empty when no PIN is set.
	PinSalt []byte `json:"pin_salt,omitempty"`
	PinHash []byte `json:"pin_hash,omitempty"`

	// PinFails counts PIN attempts not yet followed by a correct PIN.
	PinFails uint32 `json:"pin_fails"`

	// Mnemonic is the BIP-39 recovery phrase.
	Mnemonic string `json:"mnemonic,omitempty"`

	// PassphraseProtection requires a passphrase for key derivation.
	PassphraseProtection bool `json:"passphrase_protection,omitempty"`
}

func (r *Record) clone() *Record {
	c := *r
	c.PinSalt = append([]byte(nil), r.PinSalt...)
	c.PinHash = append([]byte(nil), r.PinHash...)
	return &c
}

// Persister loads and saves a Record.
type Persister interface {
	// Load returns nil, nil if nothing has been saved yet.
	Load() (*Record, error)
	Save(r *Record) error
	Clear() error
}

// FilePersister keeps the record in a JSON file.
type FilePersister struct {
	mu   sync.Mutex
	path string
}

// NewFilePersister creates a persister writing to path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Path returns the file location.
func (p *FilePersister) Path() string {
	return p.path
}

// Save writes the record to a temporary file and renames it into place.
func (p *FilePersister) Save(r *Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	r.Version = RecordVersion
	r.SavedAt = time.Now()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".skyguard-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, p.path)
}

// Load reads the record from disk.
// Returns nil, nil if the file doesn't exist.
func (p *FilePersister) Load() (*Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r := &Record{}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, err
	}
	if r.Version > RecordVersion {
		return nil, ErrUnsupportedVersion
	}
	return r, nil
}

// Clear removes the record file.
func (p *FilePersister) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := os.Remove(p.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryPersister keeps the record in memory. Useful for the emulator's
// ephemeral mode and tests.
type MemoryPersister struct {
	mu sync.Mutex
	r  *Record

	saveErr error
}

// Load returns a copy of the last saved record.
func (p *MemoryPersister) Load() (*Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.r == nil {
		return nil, nil
	}
	return p.r.clone(), nil
}

// Save stores a copy of r.
func (p *MemoryPersister) Save(r *Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.saveErr != nil {
		return p.saveErr
	}
	r.Version = RecordVersion
	r.SavedAt = time.Now()
	p.r = r.clone()
	return nil
}

// Clear drops the stored record.
func (p *MemoryPersister) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.r = nil
	return nil
}

// SetSaveErr makes subsequent saves fail with err, or succeed again when nil.
func (p *MemoryPersister) SetSaveErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saveErr = err
}
