package domain

import (
	"context"
	"time"
)

// SessionStore defines the persistence port for in-progress quiz sessions.
// Records are whole-document replace-on-write: callers always supply and
// receive a full session snapshot.
type SessionStore interface {
	// Create allocates a fresh session identifier, persists the initial
	// session state and returns the identifier.
	Create(ctx context.Context, userID, documentName string, questions []Question) (string, error)

	// Get returns the full current session state, or a
	// CodeSessionNotFound error if no such session exists.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Update atomically replaces the stored session with the given
	// snapshot. Returns CodeSessionNotFound if the session is absent.
	Update(ctx context.Context, session *Session) error

	// Delete removes the session. Idempotent.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes sessions whose last-modified time is older than
	// maxAge and returns how many were removed.
	Cleanup(ctx context.Context, maxAge time.Duration) (int, error)
}

// HistoryStore defines the persistence port for completed quiz records.
type HistoryStore interface {
	// Append inserts entry at the front of the user's history and trims
	// it to MaxHistoryEntries. Creates the per-user record on first use.
	Append(ctx context.Context, userID string, entry *HistoryEntry) error

	// List returns the stored history most-recent-first, or an empty
	// slice when the user has none.
	List(ctx context.Context, userID string) ([]HistoryEntry, error)
}
