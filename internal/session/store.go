package session

import (
	"sync"
	"time"
)

// Store keeps at most one live session per Telegram user. It is the only
// shared mutable state of the core and is guarded by a single mutex; the
// catalog the sessions reference is read-only.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		now:      time.Now,
	}
}

// Start creates a session for the user. Last selection wins: if the user
// already has a live session (for any test), it is discarded and replaced
// rather than queued — in a conversational UI only one flow is active.
func (st *Store) Start(userID int64, testID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if prev, ok := st.sessions[userID]; ok && !prev.State.Terminal() {
		prev.State = StateCancelled
	}
	s := &Session{
		UserID:    userID,
		TestID:    testID,
		State:     StateInProgress,
		StartedAt: st.now(),
	}
	st.sessions[userID] = s
	return s
}

// Get returns the user's live session, or nil when there is none.
func (st *Store) Get(userID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[userID]
	if !ok || s.State.Terminal() {
		return nil
	}
	return s
}

// Cancel discards the user's live session. Cancelling when no live
// session exists is a no-op, which makes cancellation idempotent.
func (st *Store) Cancel(userID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[userID]; ok {
		if !s.State.Terminal() {
			s.State = StateCancelled
		}
		delete(st.sessions, userID)
	}
}

// Timeout is invoked by the conversational layer's own timeout mechanism;
// the store runs no timers itself. Same semantics as Cancel.
func (st *Store) Timeout(userID int64) {
	st.Cancel(userID)
}

// Finish removes a completed session. The result has already been
// computed by that point; the session itself is discarded.
func (st *Store) Finish(userID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userID)
}
