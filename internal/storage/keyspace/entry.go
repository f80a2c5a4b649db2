package keyspace

import "time"

// Entry is a stored value together with its expiration metadata.
//
// TTL and CreatedAt are immutable after insertion: a later Set fully
// replaces the entry, it never merges. A zero TTL means the entry never
// expires.
type Entry struct {
	Data      string
	TTL       time.Duration
	CreatedAt time.Time
}

// Expired reports whether the entry's TTL has elapsed at the given instant.
// Entries without a TTL never expire.
func (e Entry) Expired(now time.Time) bool {
	return e.TTL > 0 && now.Sub(e.CreatedAt) > e.TTL
}

// Equal compares entries by logical identity, which is the data alone;
// TTL and creation instant are metadata.
func (e Entry) Equal(other Entry) bool {
	return e.Data == other.Data
}
