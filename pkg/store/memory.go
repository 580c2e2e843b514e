package store

import (
	"context"
	"sync"
)

// MemoryStore keeps records in process memory. Records are copied on the
// way in and out, so callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() (s *MemoryStore) {
	s = &MemoryStore{
		records: make(map[string]Record),
	}
	return s
}

// Get returns the record for token.
func (s *MemoryStore) Get(_ context.Context, token string) (record Record, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.records[token]
	if !ok {
		err = ErrNotFound
		return record, err
	}

	record = cloneRecord(stored)
	return record, err
}

// Put stores the record, replacing any previous one for the same token.
func (s *MemoryStore) Put(_ context.Context, record Record) (err error) {
	err = ValidateToken(record.Token)
	if err != nil {
		return err
	}

	record = cloneRecord(record)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.Token] = record
	return err
}

// List returns all records ordered by token.
func (s *MemoryStore) List(_ context.Context) (records []Record, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records = make([]Record, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, cloneRecord(r))
	}
	sortRecords(records)
	return records, err
}

// Close is a no-op.
func (s *MemoryStore) Close() (err error) {
	return err
}
