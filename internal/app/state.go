package app

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Observer is notified with the new displayed time after every change.
type Observer func(displayedTime string)

// State is the single piece of application state. It is written only by the
// event loop; observers run synchronously on the loop goroutine.
type State struct {
	displayedTime atomic.Value // string

	mu        sync.Mutex // guards observers and nextID only
	observers map[int]Observer
	nextID    int
}

// NewState creates state holding an initial formatted timestamp.
func NewState(initial string) *State {
	s := &State{observers: make(map[int]Observer)}
	s.displayedTime.Store(initial)
	return s
}

// DisplayedTime returns the current label text. Safe from any goroutine.
func (s *State) DisplayedTime() string {
	return s.displayedTime.Load().(string)
}

// Subscribe registers fn and returns a function that removes it.
func (s *State) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *State) setDisplayedTime(v string) {
	if v == "" || v == s.DisplayedTime() {
		return
	}
	s.displayedTime.Store(v)

	s.mu.Lock()
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	// Notify in subscription order.
	sort.Ints(ids)
	for _, id := range ids {
		s.mu.Lock()
		fn, ok := s.observers[id]
		s.mu.Unlock()
		if ok {
			fn(v)
		}
	}
}
