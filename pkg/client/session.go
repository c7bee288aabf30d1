package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// sessionFile is the single named record the session lives under.
const sessionFile = "challan_user.json"

// SessionStore persists one Identity on the local filesystem. It is purely
// local: no call here ever touches the network.
type SessionStore struct {
	path string
}

// NewSessionStore returns a store writing under dir. The directory is
// created on the first Save, not here.
func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{path: filepath.Join(dir, sessionFile)}
}

// Load returns the stored Identity, or nil when none is stored. A missing,
// unreadable, corrupt, or incomplete record all mean "no identity" — the
// caller lands on the login screen either way, so Load never errors.
func (s *SessionStore) Load() *Identity {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil
	}
	if !id.complete() {
		return nil
	}
	return &id
}

// Save replaces the stored record with id. The write is atomic: a temp file
// in the same directory is renamed over the record, so a crash mid-write
// never leaves a torn file behind.
func (s *SessionStore) Save(id Identity) error {
	if !id.complete() {
		return fmt.Errorf("session: refusing to save incomplete identity")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session: create state dir: %w", err)
	}

	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("session: encode identity: %w", err)
	}

	tmp, err := os.CreateTemp(dir, sessionFile+".*")
	if err != nil {
		return fmt.Errorf("session: create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("session: write identity: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("session: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("session: replace record: %w", err)
	}
	return nil
}

// Clear removes the stored record. Clearing an empty store is not an error.
func (s *SessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: clear record: %w", err)
	}
	return nil
}
