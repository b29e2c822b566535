package models

import "fmt"

// StorageVersion is the snapshot format written by this build.
const StorageVersion = 1

// Store rebuilds a HistoryStore from the snapshot. Days are re-keyed by their range start,
// so a hand-edited snapshot with duplicate dates keeps the last one.
func (s *Storage) Store() (*HistoryStore, error) {
	if s.Version != StorageVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	store := NewHistoryStore()
	for _, day := range s.Days {
		store.Put(day)
	}
	return store, nil
}
