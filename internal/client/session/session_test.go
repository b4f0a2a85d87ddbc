package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_BootsFromStorage(t *testing.T) {
	t.Parallel()

	s, err := New(NewMemoryStore("stored-token"))
	require.NoError(t, err)

	st := s.Snapshot()
	assert.True(t, st.Authenticated, "a stored token means optimistically authenticated")
	assert.Equal(t, "stored-token", st.Token)

	s, err = New(NewMemoryStore(""))
	require.NoError(t, err)
	assert.False(t, s.Snapshot().Authenticated)
}

func TestSetToken_MirrorsStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("")
	s, err := New(store)
	require.NoError(t, err)

	require.NoError(t, s.SetToken("tok-1"))

	assert.Equal(t, State{Authenticated: true, Token: "tok-1"}, s.Snapshot())
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", saved)
}

func TestClear_Idempotent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("tok")
	s, err := New(store)
	require.NoError(t, err)

	var transitions []State
	s.Subscribe(func(st State) { transitions = append(transitions, st) })

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear()) // already anonymous: no-op, no notification

	assert.Equal(t, []State{{}}, transitions)
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestSubscribe_AllObserversSeeEveryTransitionInOrder(t *testing.T) {
	t.Parallel()

	s, err := New(NewMemoryStore(""))
	require.NoError(t, err)

	var a, b []State
	s.Subscribe(func(st State) { a = append(a, st) })
	s.Subscribe(func(st State) { b = append(b, st) })

	require.NoError(t, s.SetToken("one"))
	require.NoError(t, s.Clear())
	require.NoError(t, s.SetToken("two"))

	want := []State{
		{Authenticated: true, Token: "one"},
		{},
		{Authenticated: true, Token: "two"},
	}
	assert.Equal(t, want, a)
	assert.Equal(t, want, b)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	t.Parallel()

	s, err := New(NewMemoryStore(""))
	require.NoError(t, err)

	calls := 0
	unsub := s.Subscribe(func(State) { calls++ })

	require.NoError(t, s.SetToken("one"))
	unsub()
	require.NoError(t, s.SetToken("two"))

	assert.Equal(t, 1, calls)
}

func TestAttempts_StaleResultDiscarded(t *testing.T) {
	t.Parallel()

	s, err := New(NewMemoryStore(""))
	require.NoError(t, err)

	first := s.BeginAttempt()
	second := s.BeginAttempt()

	// the older call's response arrives late and must not win
	applied, err := s.CompleteAttempt(first, "stale-token")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.False(t, s.Snapshot().Authenticated)

	applied, err = s.CompleteAttempt(second, "fresh-token")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "fresh-token", s.Snapshot().Token)
}

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileStore(path)

	// absent file is "logged out", not an error
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("tok-123"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	// clearing twice is fine
	require.NoError(t, store.Clear())
}
