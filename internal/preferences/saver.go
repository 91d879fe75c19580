package preferences

import (
	"sync"
	"sync/atomic"
)

// Saver serializes writes to a Store. Callers reserve a generation with
// Next in the order the user made changes; Save then writes only if no later
// generation has been reserved, so the store ends on the most recent value
// however the writes are scheduled.
type Saver struct {
	store Store
	gen   atomic.Uint64
	mu    sync.Mutex // held across store.Save
}

func NewSaver(store Store) *Saver {
	return &Saver{store: store}
}

// Next reserves the generation for the next Save
func (s *Saver) Next() uint64 {
	return s.gen.Add(1)
}

// Save writes p if gen is still the latest generation. saved is false when a
// newer change superseded it.
func (s *Saver) Save(gen uint64, p Preferences) (saved bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen.Load() {
		return false, nil
	}
	if err := s.store.Save(p); err != nil {
		return false, err
	}
	return true, nil
}
