// Package session holds the client's single source of truth for "is this
// client authenticated". It is constructed once by the application shell
// and injected into the network layer; there is no teardown short of
// process exit.
package session

import "sync"

// State is the observable {authenticated, token} pair.
type State struct {
	Authenticated bool
	Token         string
}

// TokenStore is the durable storage behind the session: one key holding
// the raw token string. Its absence is definitionally "logged out".
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Session is the process-wide session state. Every transition is applied
// atomically under one lock and delivered to all subscribers in order;
// the durable store always mirrors the in-memory value.
type Session struct {
	mu      sync.Mutex
	state   State
	store   TokenStore
	subs    map[int]func(State)
	nextSub int
	attempt uint64
}

// New initializes the session from durable storage. A stored token means
// optimistically authenticated; there is no local expiry check — the
// server gate is the authority and a 401 reconciles the difference.
func New(store TokenStore) (*Session, error) {
	s := &Session{store: store, subs: map[int]func(State){}}
	token, err := store.Load()
	if err != nil {
		return nil, err
	}
	if token != "" {
		s.state = State{Authenticated: true, Token: token}
	}
	return s, nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every subsequent transition. fn runs
// synchronously with the update and must not call back into the session.
// The returned function unsubscribes.
func (s *Session) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// notify must be called with the lock held.
func (s *Session) notify() {
	for _, fn := range s.subs {
		fn(s.state)
	}
}

// SetToken transitions to authenticated with the given token and mirrors
// it to durable storage.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setTokenLocked(token)
}

func (s *Session) setTokenLocked(token string) error {
	s.state = State{Authenticated: true, Token: token}
	err := s.store.Save(token)
	s.notify()
	return err
}

// Clear transitions to anonymous and wipes durable storage. Clearing an
// already-anonymous session is a no-op, so repeated 401s are idempotent.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Authenticated {
		return nil
	}
	s.state = State{}
	err := s.store.Clear()
	s.notify()
	return err
}

// BeginAttempt marks the start of a login/register call and returns its
// id. Only the most recently begun attempt may complete, so a stale,
// late-arriving response can never overwrite newer state.
func (s *Session) BeginAttempt() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt++
	return s.attempt
}

// CompleteAttempt applies the token when attempt is still the latest.
// Returns false when the result is stale and was discarded.
func (s *Session) CompleteAttempt(attempt uint64, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if attempt != s.attempt {
		return false, nil
	}
	return true, s.setTokenLocked(token)
}
