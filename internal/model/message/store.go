package message

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrStorageCorrupt is returned when the backing file exists but does not
// hold a JSON object of messages.
var ErrStorageCorrupt = errors.New("storage file is corrupt")

const defaultFileMode os.FileMode = 0o644

// Store exposes board persistence for services and handlers.
type Store interface {
	Load(ctx context.Context) (Board, error)
	Save(ctx context.Context, username, message string) (Entry, error)
}

// FileStore keeps the whole board in a single JSON file. Every Load reads the
// file and every Save rewrites it.
type FileStore struct {
	path    string
	now     func() time.Time
	locking bool
	mu      sync.Mutex
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithClock overrides the clock used to derive message keys.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		s.now = now
	}
}

// WithLocking serializes Save calls. Without it two overlapping saves can
// lose one of the updates.
func WithLocking(enabled bool) Option {
	return func(s *FileStore) {
		s.locking = enabled
	}
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Ensure creates the storage directory and an empty board file if missing.
func (s *FileStore) Ensure() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}

	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat storage file: %w", err)
	}
	return s.write(Board{})
}

// Load reads the full board. A missing file is an empty board.
func (s *FileStore) Load(ctx context.Context) (Board, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Board{}, nil
		}
		return nil, fmt.Errorf("read storage file: %w", err)
	}

	var board Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStorageCorrupt, s.path, err)
	}
	if board == nil {
		// a literal null decodes without error
		return nil, fmt.Errorf("%w: %s: not an object", ErrStorageCorrupt, s.path)
	}
	return board, nil
}

// Save adds a message keyed by the current time and rewrites the file.
func (s *FileStore) Save(ctx context.Context, username, message string) (Entry, error) {
	if s.locking {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	board, err := s.Load(ctx)
	if err != nil {
		return Entry{}, err
	}

	key := FormatTimestamp(s.now())
	board[key] = Message{Username: username, Message: message}

	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	if err := s.write(board); err != nil {
		return Entry{}, err
	}
	return Entry{Timestamp: key, Username: username, Message: message}, nil
}

func (s *FileStore) write(board Board) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(board); err != nil {
		return fmt.Errorf("encode board: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}

	// The replacement keeps the mode of the file it replaces.
	mode := defaultFileMode
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".data-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace storage file: %w", err)
	}

	success = true
	return nil
}

var _ Store = (*FileStore)(nil)
