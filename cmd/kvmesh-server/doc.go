// Package main provides the entry point for kvmesh-server.
//
// The server is the KVMesh service that provides:
//
//   - Redis-compatible wire protocol for key-value access
//   - Per-key expiry with lazy, read-time evaluation
//   - Optional Prometheus metrics endpoint
//
// Usage:
//
//	kvmesh-server [flags]
//	kvmesh-server --config /path/to/config.yaml
//
// The server loads configuration, initializes the keyspace store and
// starts the protocol listener.
package main
