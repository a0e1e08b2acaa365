package ledger

import (
	"sync"
	"time"
)

// Sequence hands out record ids derived from the creation time in milliseconds.
//
// Ids are strictly increasing, two records created in the same millisecond
// get consecutive ids.
type Sequence struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewSequence returns a Sequence reading the time from now.
func NewSequence(now func() time.Time) *Sequence {
	return &Sequence{now: now}
}

// Next returns the next id.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}

	s.last = id
	return id
}

// Observe makes sure that all future ids are larger than id.
func (s *Sequence) Observe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id > s.last {
		s.last = id
	}
}
