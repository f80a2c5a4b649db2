// Package main provides the entry point for kvmesh-cli.
//
// The CLI tool provides command-line access to a KVMesh server:
//
//   - ping: check server liveness
//   - echo: round-trip a message
//   - get/set: read and write keys, with optional expiry
//
// Usage:
//
//	kvmesh-cli [command] [flags]
//	kvmesh-cli --server localhost:6379 set greeting hello --ttl 30s
//	kvmesh-cli get greeting
package main
