package state

import "sync"

// Store owns the client state. It is built once per process and shared by
// reference.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int
}

// NewStore returns a store holding InitialState.
func NewStore() *Store {
	return &Store{state: InitialState(), subs: make(map[int]func(State))}
}

// State returns a snapshot. Reducers never mutate slices in place, so the
// snapshot stays valid after later dispatches.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies e and then notifies subscribers outside the lock, so a
// subscriber may dispatch again.
func (s *Store) Dispatch(e Event) {
	s.mu.Lock()
	s.state = Reduce(s.state, e)
	next := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers fn for every later dispatch and returns a function
// that removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
