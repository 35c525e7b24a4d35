// Package session keeps per-user conversational state: catalog filters, the
// menu stack, an open creation draft and render tracking.
package session

import "github.com/m3rciful/sneakerbot/core/telegram/state"

// Session is everything the bot remembers about one user.
type Session struct {
	Filter   Filter
	Menu     MenuStack
	Draft    *Draft
	Tracking RenderTracking
}

// Store is a keyed table of sessions. Callbacks run under the store lock and
// must not perform I/O.
type Store interface {
	// Update runs fn on the user's session, creating it when missing.
	Update(userID int64, fn func(*Session))
	// Peek runs fn on an existing session and reports whether one exists.
	Peek(userID int64, fn func(*Session)) bool
	// Drop forgets the user's session.
	Drop(userID int64)
}

// MemoryStore keeps sessions for the process lifetime.
type MemoryStore struct {
	table *state.Table[int64, Session]
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{table: state.NewTable[int64, Session](nil)}
}

func (m *MemoryStore) Update(userID int64, fn func(*Session)) { m.table.Update(userID, fn) }

func (m *MemoryStore) Peek(userID int64, fn func(*Session)) bool { return m.table.Peek(userID, fn) }

func (m *MemoryStore) Drop(userID int64) { m.table.Delete(userID) }

// Len returns the number of users with a session.
func (m *MemoryStore) Len() int { return m.table.Len() }

// HasDraft reports whether the user has a creation draft open.
func HasDraft(s Store, userID int64) bool {
	open := false
	s.Peek(userID, func(sess *Session) { open = sess.Draft != nil })
	return open
}
