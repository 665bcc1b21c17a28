package gotable

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// IDField is the record key used as the sole selection and deletion identity.
const IDField = "id"

var ErrNilStore = errors.New("gotable: nil store")

// Record maps column names to values. It must carry a unique IDField.
type Record map[string]any

// ID returns the string form of the record identity.
func (r Record) ID() string {
	return cast.ToString(r[IDField])
}

// Store is the backing collection of a table.
type Store interface {
	// ReadAll returns every record. The returned slice must not be modified
	// by the caller.
	ReadAll(ctx context.Context) ([]Record, error)
	// DeleteByIDs removes every record whose ID is in ids and returns how
	// many were removed. Unknown ids are ignored. Callers never observe a
	// partially applied delete.
	DeleteByIDs(ctx context.Context, ids []string) (int, error)
}

// Resetter is implemented by stores that can be reinitialized to seed content.
type Resetter interface {
	Reset(ctx context.Context, records []Record) error
}

// MemoryStore is a copy-on-write in-memory Store. Readers get the current
// immutable snapshot; writers build a new slice and swap it under the write
// lock, so a delete is never visible half-done.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

func NewMemoryStore(records ...Record) *MemoryStore {
	return &MemoryStore{
		records: slices.Clone(records),
	}
}

// ReadAll - implements Store.
func (s *MemoryStore) ReadAll(_ context.Context) ([]Record, error) {
	if s == nil {
		return nil, ErrNilStore
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records, nil
}

// DeleteByIDs - implements Store.
func (s *MemoryStore) DeleteByIDs(_ context.Context, ids []string) (int, error) {
	if s == nil {
		return 0, ErrNilStore
	}
	if len(ids) == 0 {
		return 0, nil
	}

	selected := lo.Keyify(ids)

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := lo.Reject(s.records, func(r Record, _ int) bool {
		_, ok := selected[r.ID()]
		return ok
	})
	removed := len(s.records) - len(kept)
	if removed > 0 {
		s.records = kept
	}

	return removed, nil
}

// Reset - implements Resetter.
func (s *MemoryStore) Reset(_ context.Context, records []Record) error {
	if s == nil {
		return ErrNilStore
	}

	fresh := slices.Clone(records)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = fresh

	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	if s == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

var (
	_ Store    = (*MemoryStore)(nil)
	_ Resetter = (*MemoryStore)(nil)
)
