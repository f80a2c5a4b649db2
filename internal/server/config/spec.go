// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for kvmesh-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Storage StorageSection `koanf:"storage"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	RESP    RESPConfig    `koanf:"resp"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// RESPConfig configures the wire protocol listener.
type RESPConfig struct {
	// Addr is the TCP listen address.
	Addr string `koanf:"addr"`
	// ReadTimeout bounds the time spent reading a single command once
	// its first byte has arrived.
	ReadTimeout time.Duration `koanf:"read_timeout"`
	// WriteTimeout bounds the time spent flushing a reply.
	WriteTimeout time.Duration `koanf:"write_timeout"`
	// IdleTimeout bounds the time a connection may sit between commands.
	IdleTimeout time.Duration `koanf:"idle_timeout"`
	// RateLimit is the maximum commands per second per client IP.
	// Zero disables rate limiting.
	RateLimit int `koanf:"rate_limit"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// StorageSection configures the keyspace store.
type StorageSection struct {
	// Shards is the shard count of the backing map (power of 2).
	Shards int `koanf:"shards"`
	// EvictOnRead deletes an entry when a read observes it expired.
	// Off by default: expired entries are masked, not reclaimed.
	EvictOnRead bool `koanf:"evict_on_read"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
