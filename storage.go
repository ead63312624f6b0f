package client

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultSessionPath returns the conventional location of the persisted
// session record, under the user's configuration directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gpugrid", "session.json"), nil
}

// FileStorage persists the session as a single JSON file. It owns the record
// exclusively: a malformed record is deleted on load and reported as absent,
// never surfaced as an error.
type FileStorage struct {
	path   string
	logger Logger
}

// FileStorageOption customizes FileStorage construction.
type FileStorageOption func(*FileStorage)

// WithFileStorageLogger overrides the logger used for self-heal events.
func WithFileStorageLogger(logger Logger) FileStorageOption {
	return func(f *FileStorage) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFileStorage creates a file-backed storage at path.
func NewFileStorage(path string, opts ...FileStorageOption) *FileStorage {
	storage := &FileStorage{
		path:   path,
		logger: defLogger{},
	}

	for _, opt := range opts {
		opt(storage)
	}

	return storage
}

// Load reads the persisted session. Absence, unreadable content, and corrupt
// records all yield nil; a corrupt record is deleted so the next load starts
// clean.
func (f *FileStorage) Load() *Session {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		f.logger.Debug("discarding corrupt session record: %v", err)
		_ = os.Remove(f.path)
		return nil
	}

	if session.AccessToken == "" {
		f.logger.Debug("discarding session record without a token")
		_ = os.Remove(f.path)
		return nil
	}

	session.AccessToken = NormalizeBearerToken(session.AccessToken)
	return &session
}

// Save overwrites the record with a serialized copy of the session.
func (f *FileStorage) Save(session *Session) error {
	if session == nil {
		return f.Delete()
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(f.path, raw, 0o600)
}

// Delete removes the record. A missing record is not an error.
func (f *FileStorage) Delete() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// NoopStorage is the storage for environments without a durable medium,
// e.g. non-interactive contexts. Every session lives for the process only.
type NoopStorage struct{}

func (NoopStorage) Load() *Session              { return nil }
func (NoopStorage) Save(session *Session) error { return nil }
func (NoopStorage) Delete() error               { return nil }
