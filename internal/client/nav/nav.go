// Package nav implements the client-side route guard: a predicate over
// the session state evaluated before entering any protected view.
package nav

import (
	"sync"

	"github.com/crewdeck/crewdeck/internal/client/session"
)

// View names a client view.
type View string

// Navigator tracks the current view and denies navigation into protected
// views while the session is anonymous. It never touches the network and
// never mutates the session.
type Navigator struct {
	mu        sync.Mutex
	session   *session.Session
	current   View
	login     View
	protected map[View]bool
}

// New starts at the login view.
func New(sess *session.Session, login View) *Navigator {
	return &Navigator{
		session:   sess,
		current:   login,
		login:     login,
		protected: map[View]bool{},
	}
}

// Protect tags views as requiring an authenticated session.
func (n *Navigator) Protect(views ...View) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, v := range views {
		n.protected[v] = true
	}
}

// Go navigates to view. A protected view with an anonymous session cancels
// the navigation and lands on login; Go reports whether the navigation
// was allowed.
func (n *Navigator) Go(view View) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.protected[view] && !n.session.Snapshot().Authenticated {
		n.current = n.login
		return false
	}
	n.current = view
	return true
}

// Current returns the active view.
func (n *Navigator) Current() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
