package auth

import (
	"sync"

	"github.com/wellhouse/stockroom/internal/models"
)

// Signal broadcasts the sign-in state: the current signed-in user (or nil
// for an anonymous session) plus a notification on every transition. The
// sync cores register with OnChange and swap their storage backend when it
// fires.
//
// Callbacks run serially, in registration order, on the goroutine that
// called Set.
type Signal struct {
	mu        sync.Mutex
	user      *models.User
	listeners []signalListener
	nextID    int
}

type signalListener struct {
	id int
	fn func(*models.User)
}

// NewSignal creates a Signal with no signed-in user.
func NewSignal() *Signal {
	return &Signal{}
}

// Current returns the signed-in user, or nil for an anonymous session.
func (s *Signal) Current() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// OnChange registers a callback invoked with the new user (or nil) on every
// sign-in/sign-out transition. The returned func unregisters it.
func (s *Signal) OnChange(fn func(*models.User)) (stop func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, signalListener{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Set publishes a new sign-in state and notifies every listener in order.
func (s *Signal) Set(user *models.User) {
	s.mu.Lock()
	s.user = user
	listeners := make([]signalListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(user)
	}
}
