package keyspace

import (
	"time"

	"github.com/yndnr/kvmesh-go/internal/core/domain"
	"github.com/yndnr/kvmesh-go/pkg/cmap"
)

// Store is a concurrency-safe mapping from key to Entry with lazy,
// read-time expiration.
//
// Expired entries are masked, not reclaimed: they stay in the map until a
// later Set overwrites them. There is no background sweeper. The optional
// evict-on-read mode deletes an entry once a read observes it expired.
type Store struct {
	entries     *cmap.Map[Entry]
	now         func() time.Time
	evictOnRead bool
}

// Option configures the Store.
type Option func(*Store)

// WithShards sets the shard count of the backing map.
func WithShards(n int) Option {
	return func(s *Store) {
		s.entries = cmap.NewWithShards[Entry](n)
	}
}

// WithEvictOnRead makes a Get that observes an expired entry delete it.
// The read still reports the entry as expired.
func WithEvictOnRead(evict bool) Option {
	return func(s *Store) {
		s.evictOnRead = evict
	}
}

// WithNowFunc overrides the clock, for deterministic expiration tests.
func WithNowFunc(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		entries: cmap.New[Entry](),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set unconditionally inserts or overwrites the entry under key. Any TTL
// carried by a prior entry is discarded; the new entry's own TTL (or the
// absence of one) is authoritative. ttl <= 0 stores the value without
// expiration.
func (s *Store) Set(key, data string, ttl time.Duration) {
	if ttl < 0 {
		ttl = 0
	}
	s.entries.Set(key, Entry{
		Data:      data,
		TTL:       ttl,
		CreatedAt: s.now(),
	})
}

// Get returns the entry stored under key.
//
// It fails with domain.ErrKeyNotFound when the key has never been set and
// with domain.ErrKeyExpired when the entry exists but its TTL has elapsed.
// The expiration check happens at read time; an expired entry is not
// removed unless evict-on-read is enabled.
func (s *Store) Get(key string) (Entry, error) {
	entry, ok := s.entries.Get(key)
	if !ok {
		return Entry{}, domain.ErrKeyNotFound
	}
	if entry.Expired(s.now()) {
		if s.evictOnRead {
			s.entries.Delete(key)
		}
		return Entry{}, domain.ErrKeyExpired
	}
	return entry, nil
}

// Has reports whether key holds a logically present (non-expired) entry.
func (s *Store) Has(key string) bool {
	_, err := s.Get(key)
	return err == nil
}

// Len returns the number of physically stored entries, expired ones
// included.
func (s *Store) Len() int {
	return s.entries.Count()
}
