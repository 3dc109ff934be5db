package market

import (
	"sync"
	"time"

	"github.com/rickgao/polymarket-data/internal/contract"
)

// key identifies one cache slot.
type key struct {
	asset   contract.Asset
	cadence contract.Cadence
}

// registryState holds the thread-safe entry cache.
type registryState struct {
	mu sync.RWMutex

	entries map[key]Entry

	// Last successful catalogue sync timestamp.
	lastSyncAt time.Time
}

func newState() *registryState {
	return &registryState{
		entries: make(map[key]Entry),
	}
}

// get returns one entry (read-locked).
func (s *registryState) get(k key) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[k]
	return e, ok
}

// active returns a copy of all entries (read-locked).
func (s *registryState) active() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		result = append(result, e)
	}
	return result
}

// put stores an entry (write-locked).
func (s *registryState) put(k key, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[k] = e
	s.lastSyncAt = time.Now()
}

// drop removes an entry (write-locked).
func (s *registryState) drop(k key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, k)
}

func (s *registryState) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
