package models

// Storage is the on-disk snapshot of a published HistoryStore.
type Storage struct {
	Version int   `json:"version"`
	Days    []Day `json:"days"`
}

// NewStorage captures store as a versioned snapshot, days in ascending date order.
func NewStorage(store *HistoryStore) *Storage {
	s := &Storage{Version: StorageVersion, Days: []Day{}}
	if store != nil {
		s.Days = store.Days()
	}
	return s
}
