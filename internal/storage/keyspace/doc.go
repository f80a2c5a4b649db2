// Package keyspace provides the in-memory key-value store for kvmesh.
//
// The store is shared by all connection handlers through a sharded
// concurrent map; each Get/Set holds exactly one shard lock for the
// duration of a single map operation. Expiration is a read-time predicate
// evaluated against the entry's creation instant, not a background job.
package keyspace
