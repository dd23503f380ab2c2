package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	if s.HasPin() {
		t.Error("HasPin() = true on fresh store")
	}
	if s.HasMnemonic() {
		t.Error("HasMnemonic() = true on fresh store")
	}
	if s.PinFails() != 0 {
		t.Errorf("PinFails() = %d, want 0", s.PinFails())
	}
	if len(s.DeviceID()) != 24 {
		t.Errorf("DeviceID() = %q, want 24 hex chars", s.DeviceID())
	}
}

func TestPin(t *testing.T) {
	t.Run("SetAndMatch", func(t *testing.T) {
		s := NewMemoryStore()
		if err := s.SetPin("1234"); err != nil {
			t.Fatalf("SetPin() error = %v", err)
		}
		if !s.HasPin() {
			t.Fatal("HasPin() = false after SetPin")
		}
		if !s.PinMatches("1234") {
			t.Error("PinMatches(correct) = false")
		}
		if s.PinMatches("4321") {
			t.Error("PinMatches(wrong) = true")
		}
		if s.PinMatches("") {
			t.Error("PinMatches(empty) = true")
		}
	})

	t.Run("NoPinNeverMatches", func(t *testing.T) {
		s := NewMemoryStore()
		if s.PinMatches("") {
			t.Error("PinMatches(\"\") = true without a PIN")
		}
	})

	t.Run("Remove", func(t *testing.T) {
		s := NewMemoryStore()
		_ = s.SetPin("1234")
		if err := s.SetPin(""); err != nil {
			t.Fatalf("SetPin(\"\") error = %v", err)
		}
		if s.HasPin() {
			t.Error("HasPin() = true after removal")
		}
	})

	t.Run("SaltIsRandom", func(t *testing.T) {
		a, b := NewMemoryStore(), NewMemoryStore()
		_ = a.SetPin("1111")
		_ = b.SetPin("1111")
		if string(a.rec.PinHash) == string(b.rec.PinHash) {
			t.Error("identical PINs produced identical verifiers")
		}
	})
}

func TestPinFails(t *testing.T) {
	t.Run("IncrementAndReset", func(t *testing.T) {
		s := NewMemoryStore()
		for i := 0; i < 3; i++ {
			if err := s.IncrementPinFails(); err != nil {
				t.Fatalf("IncrementPinFails() error = %v", err)
			}
		}
		if s.PinFails() != 3 {
			t.Errorf("PinFails() = %d, want 3", s.PinFails())
		}
		if err := s.ResetPinFails(); err != nil {
			t.Fatalf("ResetPinFails() error = %v", err)
		}
		if s.PinFails() != 0 {
			t.Errorf("PinFails() = %d after reset, want 0", s.PinFails())
		}
	})

	t.Run("IncrementIsPersisted", func(t *testing.T) {
		p := &MemoryPersister{}
		s, err := NewStore(p)
		if err != nil {
			t.Fatal(err)
		}
		_ = s.IncrementPinFails()

		rec, _ := p.Load()
		if rec.PinFails != 1 {
			t.Errorf("persisted PinFails = %d, want 1", rec.PinFails)
		}
	})

	t.Run("FailedSaveLeavesCounter", func(t *testing.T) {
		p := &MemoryPersister{}
		s, _ := NewStore(p)
		p.SetSaveErr(errors.New("flash worn out"))

		if err := s.IncrementPinFails(); err == nil {
			t.Fatal("IncrementPinFails() error = nil, want failure")
		}
		if s.PinFails() != 0 {
			t.Errorf("PinFails() = %d after failed save, want 0", s.PinFails())
		}
	})
}

func TestMnemonic(t *testing.T) {
	s := NewMemoryStore()

	if err := s.SetMnemonic(""); !errors.Is(err, ErrEmptyMnemonic) {
		t.Errorf("SetMnemonic(\"\") error = %v, want ErrEmptyMnemonic", err)
	}
	if err := s.SetMnemonic("cloud flower upset remain green metal below cup stem infant art thank"); err != nil {
		t.Fatalf("SetMnemonic() error = %v", err)
	}
	if err := s.SetMnemonic("other"); !errors.Is(err, ErrMnemonicSet) {
		t.Errorf("second SetMnemonic() error = %v, want ErrMnemonicSet", err)
	}
	if s.Mnemonic() == "other" {
		t.Error("second SetMnemonic() overwrote the seed")
	}
}

func TestWipe(t *testing.T) {
	s := NewMemoryStore()
	id := s.DeviceID()
	_ = s.SetPin("1234")
	_ = s.SetMnemonic("abandon ability")
	_ = s.SetLabel("mine")
	_ = s.SetPassphraseProtection(true)
	_ = s.IncrementPinFails()

	if err := s.Wipe(); err != nil {
		t.Fatalf("Wipe() error = %v", err)
	}

	if s.HasPin() || s.HasMnemonic() || s.PassphraseProtection() {
		t.Error("credentials survived Wipe()")
	}
	if s.Label() != "" || s.PinFails() != 0 {
		t.Error("settings survived Wipe()")
	}
	if s.DeviceID() == id {
		t.Error("DeviceID() unchanged after Wipe()")
	}
}

func TestFileStore(t *testing.T) {
	t.Run("Reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "device.json")
		s, err := NewFileStore(path)
		if err != nil {
			t.Fatalf("NewFileStore() error = %v", err)
		}
		_ = s.SetPin("2468")
		_ = s.SetLabel("desk")
		_ = s.IncrementPinFails()

		reopened, err := NewFileStore(path)
		if err != nil {
			t.Fatalf("NewFileStore() reopen error = %v", err)
		}
		if !reopened.PinMatches("2468") {
			t.Error("PIN lost across reopen")
		}
		if reopened.Label() != "desk" {
			t.Errorf("Label() = %q, want %q", reopened.Label(), "desk")
		}
		if reopened.PinFails() != 1 {
			t.Errorf("PinFails() = %d, want 1", reopened.PinFails())
		}
		if reopened.DeviceID() != s.DeviceID() {
			t.Error("DeviceID changed across reopen")
		}
	})

	t.Run("NoTempFilesLeft", func(t *testing.T) {
		dir := t.TempDir()
		s, _ := NewFileStore(filepath.Join(dir, "device.json"))
		_ = s.SetLabel("x")

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("dir has %d entries, want 1", len(entries))
		}
	})

	t.Run("FutureVersion", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "device.json")
		if err := os.WriteFile(path, []byte(`{"version": 99}`), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := NewFileStore(path); !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("NewFileStore() error = %v, want ErrUnsupportedVersion", err)
		}
	})
}

func TestFilePersisterLoadNonExistent(t *testing.T) {
	p := NewFilePersister(filepath.Join(t.TempDir(), "nonexistent.json"))

	got, err := p.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != nil {
		t.Errorf("Load() = %v, want nil for non-existent file", got)
	}
	if err := p.Clear(); err != nil {
		t.Errorf("Clear() on missing file error = %v", err)
	}
}
