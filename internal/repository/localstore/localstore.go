// Package localstore implements the bed store on a single JSON file. Writes
// rewrite the whole collection (last-save-wins), an in-process fan-out covers
// subscribers in the same process, and a modification-time poller picks up
// writes from sibling processes sharing the file.
package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dlamayo/boardinghouse/internal/domain/models"
	"github.com/dlamayo/boardinghouse/internal/repository/bedstore"
)

const defaultPollInterval = 2 * time.Second

// Store is a file-backed bedstore.Store.
type Store struct {
	path   string
	logger *zap.Logger

	mu      sync.Mutex
	subs    map[int]func([]models.BedRecord)
	nextSub int
	lastMod time.Time

	done chan struct{}
}

var _ bedstore.Store = (*Store)(nil)

// Open prepares the store at path, creating the parent directory when needed,
// and starts the change poller.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		return nil, fmt.Errorf("localstore path must not be empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create localstore directory: %w", err)
		}
	}

	s := &Store{
		path:   path,
		logger: logger,
		subs:   make(map[int]func([]models.BedRecord)),
		done:   make(chan struct{}),
	}

	if info, err := os.Stat(path); err == nil {
		s.lastMod = info.ModTime()
	}

	go s.poll()
	return s, nil
}

// List returns the current collection. An absent or unreadable file reads as
// an empty collection rather than an error.
func (s *Store) List(ctx context.Context) ([]models.BedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// Subscribe registers fn for change notification and returns its cancel func.
func (s *Store) Subscribe(fn func([]models.BedRecord)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}, nil
}

// Create appends a new record with a generated id.
func (s *Store) Create(ctx context.Context, rec models.BedRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = uuid.NewString()
	rec.UpdatedAt = time.Now().UTC()

	records := append(s.load(), rec)
	if err := s.save(records); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// Update applies the patch to the matching record and rewrites the file.
func (s *Store) Update(ctx context.Context, id string, patch bedstore.BedPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	found := false
	for i := range records {
		if records[i].ID != id {
			continue
		}
		patch.Apply(&records[i])
		records[i].UpdatedAt = time.Now().UTC()
		found = true
		break
	}
	if !found {
		return bedstore.ErrNotFound
	}
	return s.save(records)
}

// Remove erases the record permanently.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	kept := records[:0]
	for _, rec := range records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return bedstore.ErrNotFound
	}
	return s.save(kept)
}

// Close stops the poller. The file itself needs no teardown.
func (s *Store) Close(ctx context.Context) error {
	close(s.done)
	return nil
}

// load must be called with the mutex held.
func (s *Store) load() []models.BedRecord {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed reading bed store file, treating as empty", zap.Error(err))
		}
		return nil
	}

	var records []models.BedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		s.logger.Warn("corrupt bed store file, treating as empty", zap.Error(err))
		return nil
	}
	return records
}

// save must be called with the mutex held. Notifies subscribers on success.
func (s *Store) save(records []models.BedRecord) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bed store: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write bed store file: %w", err)
	}
	if info, err := os.Stat(s.path); err == nil {
		s.lastMod = info.ModTime()
	}
	s.notifyLocked(records)
	return nil
}

func (s *Store) notifyLocked(records []models.BedRecord) {
	snapshot := make([]models.BedRecord, len(records))
	copy(snapshot, records)
	for _, fn := range s.subs {
		go fn(snapshot)
	}
}

// poll watches the file for writes made by other processes and re-broadcasts
// them to subscribers.
func (s *Store) poll() {
	ticker := time.NewTicker(defaultPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			info, err := os.Stat(s.path)
			if err == nil && info.ModTime().After(s.lastMod) {
				s.lastMod = info.ModTime()
				s.notifyLocked(s.load())
			}
			s.mu.Unlock()
		}
	}
}
