// Package authstate holds the client's view of whether the user is signed in.
//
// A Store starts loading and asks the server once, in the background,
// whether the session cookie is still valid. Views read the State through
// Snapshot or Subscribe and pass it to the route guard.
//
// No timeout is applied to the check: if the server never answers the
// store stays loading until the caller's context is cancelled or Close is
// called.
package authstate

import (
	"context"
	"sync"
)

// Checker asks the server whether the current session is valid.
// client.HTTPClient satisfies it.
type Checker interface {
	Check(ctx context.Context) (string, error)
}

// State is the client's authentication view.
type State struct {
	IsAuthenticated bool
	IsLoading       bool
}

// Store is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	state     State
	cancelled bool
	cancel    context.CancelFunc
	done      chan struct{}
	subs      map[int]chan State
	nextSub   int
}

// New returns a loading Store and starts the single session check.
func New(ctx context.Context, checker Checker) *Store {
	ctx, cancel := context.WithCancel(ctx)
	s := &Store{
		state:  State{IsAuthenticated: false, IsLoading: true},
		cancel: cancel,
		done:   make(chan struct{}),
		subs:   make(map[int]chan State),
	}
	go s.check(ctx, checker)
	return s
}

func (s *Store) check(ctx context.Context, checker Checker) {
	defer close(s.done)

	_, err := checker.Check(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled {
		return
	}
	s.state = State{IsAuthenticated: err == nil, IsLoading: false}
	s.publishLocked()
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Login marks the user as authenticated after a successful sign-in.
func (s *Store) Login() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsAuthenticated = true
	s.publishLocked()
}

// Done is closed once the session check goroutine has returned.
// After Close the state it observed is discarded.
func (s *Store) Done() <-chan struct{} {
	return s.done
}

// Subscribe returns a channel that receives the latest state after each
// change, and a function that stops the subscription. Slow readers only
// see the most recent state.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan State, 1)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// Close cancels a pending check. A result arriving afterwards is ignored.
func (s *Store) Close() {
	s.mu.Lock()
	s.cancelled = true
	for id, c := range s.subs {
		delete(s.subs, id)
		close(c)
	}
	s.mu.Unlock()
	s.cancel()
}

func (s *Store) publishLocked() {
	for _, c := range s.subs {
		select {
		case <-c:
		default:
		}
		c <- s.state
	}
}
