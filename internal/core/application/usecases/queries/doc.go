// Package queries contains the read side of the dispatch core. Queries never
// change state; route and delay answers are recomputed from stored orders on every
// call rather than cached.
package queries

import "time"

// Clock supplies the current time; nil means time.Now in UTC.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
