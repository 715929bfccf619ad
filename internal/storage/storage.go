package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"wedding-site/internal/models"
)

var (
	// ErrNotFound is returned when no guest matches the given username.
	ErrNotFound = errors.New("guest not found")
	// ErrConflict is returned when inserting a username that already exists.
	ErrConflict = errors.New("username already exists")
)

// Storage persists the guest list as a single JSON array file. The file
// is the system of record: every operation is a full load-mutate-save
// cycle, serialized behind one lock.
type Storage struct {
	mu   sync.RWMutex
	file string
	log  zerolog.Logger
}

// NormalizeUsername returns the canonical form of a username: trimmed
// and lower-cased. Applied on insert and on every lookup.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NewStorage creates a storage instance backed by filePath. A missing
// file is created holding an empty list; an unreadable or corrupt file
// is an error.
func NewStorage(filePath string, log zerolog.Logger) (*Storage, error) {
	s := &Storage{
		file: filePath,
		log:  log,
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		if err := s.save(nil); err != nil {
			return nil, err
		}
		s.log.Info().Str("file", filePath).Msg("created empty guest list")
		return s, nil
	}

	// Validate the existing file up front rather than failing on the
	// first request.
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadAll returns the full guest list. A read or parse failure is
// returned as an error, never as an empty list.
func (s *Storage) LoadAll() ([]models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// SaveAll overwrites the full guest list.
func (s *Storage) SaveAll(guests []models.Guest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(guests)
}

// FindByUsername retrieves a guest by normalized username.
func (s *Storage) FindByUsername(username string) (models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	guests, err := s.load()
	if err != nil {
		return models.Guest{}, err
	}

	key := NormalizeUsername(username)
	for _, g := range guests {
		if NormalizeUsername(g.Username) == key {
			return g, nil
		}
	}
	return models.Guest{}, ErrNotFound
}

// Insert adds a new guest. The username is stored in normalized form.
func (s *Storage) Insert(guest models.Guest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	guests, err := s.load()
	if err != nil {
		return err
	}

	guest.Username = NormalizeUsername(guest.Username)
	for _, g := range guests {
		if NormalizeUsername(g.Username) == guest.Username {
			return ErrConflict
		}
	}

	return s.save(append(guests, guest))
}

// Update locates the guest by normalized username, applies mutate to it
// and persists the list. Mutators merge individual field groups; callers
// never replace a whole record.
func (s *Storage) Update(username string, mutate func(*models.Guest)) (models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guests, err := s.load()
	if err != nil {
		return models.Guest{}, err
	}

	key := NormalizeUsername(username)
	for i := range guests {
		if NormalizeUsername(guests[i].Username) == key {
			mutate(&guests[i])
			if err := s.save(guests); err != nil {
				return models.Guest{}, err
			}
			return guests[i], nil
		}
	}
	return models.Guest{}, ErrNotFound
}

// Remove deletes the guest with the given username.
func (s *Storage) Remove(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	guests, err := s.load()
	if err != nil {
		return err
	}

	key := NormalizeUsername(username)
	for i, g := range guests {
		if NormalizeUsername(g.Username) == key {
			return s.save(append(guests[:i], guests[i+1:]...))
		}
	}
	return ErrNotFound
}

// load reads and parses the whole file. Callers must hold at least the
// read lock.
func (s *Storage) load() ([]models.Guest, error) {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return nil, fmt.Errorf("failed to read guest list: %w", err)
	}

	guests := make([]models.Guest, 0)
	if len(data) == 0 {
		return guests, nil
	}
	if err := json.Unmarshal(data, &guests); err != nil {
		return nil, fmt.Errorf("failed to parse guest list: %w", err)
	}
	return guests, nil
}

// save writes the whole list to a temp file and renames it into place,
// so a crash mid-write never truncates the list. Callers must hold the
// write lock.
func (s *Storage) save(guests []models.Guest) error {
	if guests == nil {
		guests = make([]models.Guest, 0)
	}

	data, err := json.MarshalIndent(guests, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal guest list: %w", err)
	}

	tmp := s.file + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write guest list: %w", err)
	}
	if err := os.Rename(tmp, s.file); err != nil {
		return fmt.Errorf("failed to replace guest list: %w", err)
	}
	return nil
}
