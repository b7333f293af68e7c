package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/finsight/receipt-forecast/dto"
)

// JSONStore persists receipt entries as a JSON array in a single file. The
// whole file is rewritten on every append; access is serialized by a mutex.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

// Append adds one entry to the store.
func (s *JSONStore) Append(entry dto.ReceiptEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	return s.save(append(entries, entry))
}

// All returns every stored entry in insertion order.
func (s *JSONStore) All() ([]dto.ReceiptEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *JSONStore) load() ([]dto.ReceiptEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []dto.ReceiptEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var entries []dto.ReceiptEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *JSONStore) save(entries []dto.ReceiptEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}
