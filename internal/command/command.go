// Package command turns decoded protocol tokens into typed commands.
package command

import "time"

// Command is a validated, typed request. Exactly one variant exists per
// operation the server supports.
type Command interface {
	// Name returns the canonical command name, used for dispatch
	// logging and metrics labels.
	Name() string
}

// Ping requests a liveness reply.
type Ping struct{}

func (Ping) Name() string { return "PING" }

// Echo requests the message be repeated back verbatim.
type Echo struct {
	Message string
}

func (Echo) Name() string { return "ECHO" }

// Get requests the value stored under Key.
type Get struct {
	Key string
}

func (Get) Name() string { return "GET" }

// Set stores Value under Key. A zero TTL means the entry never expires.
type Set struct {
	Key   string
	Value string
	TTL   time.Duration
}

func (Set) Name() string { return "SET" }
