package repository

import "sync"

// Sequence allocates monotonically increasing ids. Ids are never reused, even
// after deletes. The same Sequence can be shared by several stores to give
// them one id space, matching the reference deployment.
type Sequence struct {
	mu   sync.Mutex
	next int64
}

// NewSequence returns a Sequence whose first Next call yields origin.
func NewSequence(origin int64) *Sequence {
	return &Sequence{next: origin}
}

// Next allocates the next id.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	return id
}

// Advance moves the sequence past id, so an upsert at an explicit id can never
// collide with a later allocation.
func (s *Sequence) Advance(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id >= s.next {
		s.next = id + 1
	}
}
