package order

import "time"

// HistoryEntry records one status change. Entries are only ever appended.
type HistoryEntry struct {
	Status Status
	At     time.Time
	Note   string
}
