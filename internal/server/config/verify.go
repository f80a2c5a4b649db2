// Package config defines the server configuration structure.
package config

import (
	"errors"
	"net"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	return verifyStorage(&cfg.Storage)
}

func verifyServer(cfg *ServerSection) error {
	if cfg.RESP.Addr == "" {
		return errors.New("server.resp.addr is required")
	}
	if _, _, err := net.SplitHostPort(cfg.RESP.Addr); err != nil {
		return errors.New("server.resp.addr is not a host:port address: " + err.Error())
	}
	if cfg.RESP.RateLimit < 0 {
		return errors.New("server.resp.rate_limit must not be negative")
	}
	if cfg.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(cfg.Metrics.Addr); err != nil {
			return errors.New("server.metrics.addr is not a host:port address: " + err.Error())
		}
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	if cfg.Shards < 1 {
		return errors.New("storage.shards must be at least 1")
	}
	if cfg.Shards&(cfg.Shards-1) != 0 {
		return errors.New("storage.shards must be a power of 2")
	}
	return nil
}
