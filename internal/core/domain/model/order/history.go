package order

import (
	"time"
)

// HistoryEntry is one immutable record in an order's status history.
// Entries are append-only: once recorded they are never rewritten, giving a
// full audit trail of the order lifecycle.
type HistoryEntry struct {
	status Status
	at     time.Time
	note   string
}

// NewHistoryEntry creates a history record for a status change.
func NewHistoryEntry(status Status, at time.Time, note string) HistoryEntry {
	return HistoryEntry{
		status: status,
		at:     at,
		note:   note,
	}
}

// Status returns the status the order entered.
func (h HistoryEntry) Status() Status {
	return h.status
}

// At returns when the status change happened.
func (h HistoryEntry) At() time.Time {
	return h.at
}

// Note returns the optional free-form annotation, e.g. a cancellation reason.
func (h HistoryEntry) Note() string {
	return h.note
}
