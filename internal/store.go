package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	storeDirMode  = 0o700
	storeFileMode = 0o600

	storeTempPattern = ".auth-*.json.tmp"
)

// Credentials is one persisted identity: modhash, session cookie, and the
// t2-prefixed account id, which stays empty until first resolved.
type Credentials struct {
	Modhash string
	Cookie  string
	UserID  string
}

// MarshalJSON writes the on-disk shape: a 3-element array of
// [modhash, cookie, userID-or-null].
func (c Credentials) MarshalJSON() ([]byte, error) {
	entries := []any{c.Modhash, c.Cookie, nil}
	if c.UserID != "" {
		entries[2] = c.UserID
	}
	return json.Marshal(entries)
}

// UnmarshalJSON reads the 3-element array shape; a null userID element is
// treated as unresolved.
func (c *Credentials) UnmarshalJSON(data []byte) error {
	var entries []*string
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	if len(entries) != 3 {
		return fmt.Errorf("credential entry has %d elements, want 3", len(entries))
	}
	get := func(i int) string {
		if entries[i] == nil {
			return ""
		}
		return *entries[i]
	}
	c.Modhash, c.Cookie, c.UserID = get(0), get(1), get(2)
	return nil
}

type storeFile struct {
	Auth map[string]Credentials `json:"auth"`
}

// Store persists the username-to-credentials mapping between runs. The file
// is read once at startup and rewritten wholesale on every change; writes go
// through a temp file and rename so a crash never leaves a torn file behind.
type Store struct {
	path string

	mu   sync.Mutex
	auth map[string]Credentials
}

// OpenStore loads the credential file at path. A missing or empty file
// yields an empty store, not an error.
func OpenStore(path string) (*Store, error) {
	s := &Store{path: path, auth: map[string]Credentials{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read auth store: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode auth store %s: %w", path, err)
	}
	if file.Auth != nil {
		s.auth = file.Auth
	}
	return s, nil
}

// Get returns the persisted credentials for user, if any. Stale entries are
// assumed valid until a login using them is forced to refresh.
func (s *Store) Get(user string) (Credentials, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	creds, ok := s.auth[user]
	return creds, ok
}

// Put records credentials for user and saves the whole mapping to disk.
func (s *Store) Put(user string, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth[user] = creds
	return s.save()
}

// Delete removes the entry for user, if present, and saves.
func (s *Store) Delete(user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.auth[user]; !ok {
		return nil
	}
	delete(s.auth, user)
	return s.save()
}

// save must be called with the mutex held.
func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, storeDirMode); err != nil {
		return fmt.Errorf("create auth store directory: %w", err)
	}

	data, err := json.MarshalIndent(storeFile{Auth: s.auth}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode auth store: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, storeTempPattern)
	if err != nil {
		return fmt.Errorf("create temp auth store: %w", err)
	}
	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp auth store: %w", err)
	}
	if err := tempFile.Chmod(storeFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp auth store: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp auth store: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace auth store: %w", err)
	}
	cleanup = false
	return nil
}
