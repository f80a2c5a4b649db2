package benchmark

import (
	"fmt"
	"testing"
	"time"

	"github.com/yndnr/kvmesh-go/internal/storage/keyspace"
)

// KeyCounts defines the keyspace sizes for benchmarking.
var KeyCounts = []int{1000, 10000, 100000}

// prefillStore prefills a store with count keys and returns their names.
func prefillStore(s *keyspace.Store, count int) []string {
	keys := make([]string, count)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
		s.Set(keys[i], fmt.Sprintf("value-%d", i), 0)
	}
	return keys
}

// BenchmarkStoreSet benchmarks writes at various keyspace sizes.
func BenchmarkStoreSet(b *testing.B) {
	for _, preload := range KeyCounts {
		b.Run(fmt.Sprintf("preload_%d", preload), func(b *testing.B) {
			s := keyspace.New()
			prefillStore(s, preload)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				s.Set(fmt.Sprintf("bench-key-%d", i), "bench-value", 0)
			}
		})
	}
}

// BenchmarkStoreGet benchmarks reads at various keyspace sizes.
func BenchmarkStoreGet(b *testing.B) {
	for _, count := range KeyCounts {
		b.Run(fmt.Sprintf("keys_%d", count), func(b *testing.B) {
			s := keyspace.New()
			keys := prefillStore(s, count)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if _, err := s.Get(keys[i%len(keys)]); err != nil {
					b.Fatalf("Get failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkStoreGetExpired benchmarks the expiry check on masked entries.
func BenchmarkStoreGetExpired(b *testing.B) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	s := keyspace.New(keyspace.WithNowFunc(func() time.Time { return now }))

	s.Set("k", "v", time.Second)
	now = base.Add(time.Hour)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		s.Get("k")
	}
}

// BenchmarkStoreParallel benchmarks mixed reads and writes across
// goroutines, the shape of a server under concurrent connections.
func BenchmarkStoreParallel(b *testing.B) {
	s := keyspace.New(keyspace.WithShards(64))
	keys := prefillStore(s, 10000)

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := keys[i%len(keys)]
			if i%10 == 0 {
				s.Set(key, "updated", 0)
			} else {
				s.Get(key)
			}
			i++
		}
	})
}
