package respserver

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/kvmesh-go/internal/command"
	"github.com/yndnr/kvmesh-go/internal/protocol"
	"github.com/yndnr/kvmesh-go/internal/storage/keyspace"
	"github.com/yndnr/kvmesh-go/internal/telemetry/logger"
	"github.com/yndnr/kvmesh-go/internal/telemetry/metric"
)

// Config holds the wire protocol server configuration.
type Config struct {
	// Addr is the TCP listen address.
	Addr string
	// ReadTimeout is the timeout for reading a command once its first
	// byte has arrived (default: 30s). Helps against slowloris peers.
	ReadTimeout time.Duration
	// WriteTimeout is the timeout for flushing a reply (default: 30s).
	WriteTimeout time.Duration
	// IdleTimeout is the timeout for idle connections (default: 5m).
	IdleTimeout time.Duration
	// RateLimit is the maximum commands per second per IP.
	// Zero disables rate limiting.
	RateLimit int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:         "127.0.0.1:6379",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  5 * time.Minute,
	}
}

// Server accepts connections and runs the read-decode-execute-encode-write
// loop for each, one goroutine per connection. All connections share one
// keyspace store.
type Server struct {
	cfg     *Config
	handler *Handler
	limiter *ipLimiter
	log     logger.Logger
	metrics *metric.Registry

	ln      net.Listener
	running atomic.Bool
	wg      sync.WaitGroup
}

// Conn represents a single client connection.
type Conn struct {
	netConn net.Conn
	r       *protocol.Reader
	w       *protocol.Writer
	id      string
	closed  atomic.Bool
}

func newConn(c net.Conn) *Conn {
	return &Conn{
		netConn: c,
		r:       protocol.NewReader(c),
		w:       protocol.NewWriter(c),
		id:      ulid.Make().String(),
	}
}

func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// New creates a new wire protocol server. metrics may be nil.
func New(cfg *Config, store *keyspace.Store, log logger.Logger, metrics *metric.Registry) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Default()
	}

	return &Server{
		cfg:     cfg,
		handler: NewHandler(store, log, metrics),
		limiter: newIPLimiter(cfg.RateLimit),
		log:     log,
		metrics: metrics,
	}
}

// Start begins listening and accepting connections. It returns once the
// listener is bound; accepting runs in the background until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.running.Store(true)
	s.log.Info("server listening", "addr", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx, ln); err != nil && s.running.Load() {
			s.log.Error("accept loop error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound listener address, for tests that listen on :0.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown closes the listener and waits for in-flight connections to
// drain, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error
	if s.ln != nil {
		if err := s.ln.Close(); err != nil {
			firstErr = err
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		c, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(newConn(c))
		}()
	}
}

// serveConn runs the connection loop: read a frame, interpret it, execute
// the command, flush the reply. Protocol errors are fatal to the
// connection; command errors produce an error reply and the loop
// continues; store errors always map to a reply.
func (s *Server) serveConn(c *Conn) {
	defer c.Close()

	log := s.log.With("conn", c.id, "remote", c.RemoteAddr().String())
	log.Debug("connection opened")
	if s.metrics != nil {
		s.metrics.ConnectionsTotal.Inc()
		s.metrics.ConnectionsActive.Inc()
		defer s.metrics.ConnectionsActive.Dec()
	}

	readTimeout := s.cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 30 * time.Second
	}
	writeTimeout := s.cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 30 * time.Second
	}
	idleTimeout := s.cfg.IdleTimeout
	if idleTimeout == 0 {
		idleTimeout = 5 * time.Minute
	}

	for {
		// First byte: allow the idle timeout, connections may sit
		// between commands.
		if err := c.netConn.SetReadDeadline(time.Now().Add(idleTimeout)); err != nil {
			return
		}
		if _, err := c.r.Peek(1); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("connection closed by peer")
				return
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				log.Debug("connection timed out")
				return
			}
			log.Debug("connection read error", "error", err)
			return
		}

		// After the first byte: tighten to the per-command read timeout
		// so a slow sender cannot hold the frame open.
		if err := c.netConn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return
		}

		tok, err := c.r.ReadToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("connection closed by peer")
				return
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				log.Debug("connection timed out")
				return
			}
			if s.metrics != nil {
				s.metrics.ProtocolErrors.Inc()
			}
			if errors.Is(err, protocol.ErrLimitExceeded) {
				log.Warn("protocol limit exceeded", "error", err)
				s.replyAndClose(c, writeTimeout, "ERR protocol limit exceeded")
				return
			}
			log.Debug("protocol error", "error", err)
			s.replyAndClose(c, writeTimeout, "ERR protocol error: "+err.Error())
			return
		}

		// An empty frame is a no-op, not an error: read loops may
		// deliver stray empty reads.
		if tok.Type == protocol.TypeArray && len(tok.Elements) == 0 {
			continue
		}

		if s.limiter != nil && !s.limiter.allow(c.RemoteAddr().String()) {
			if err := s.reply(c, writeTimeout, func() error {
				return c.w.WriteError("ERR rate limit exceeded")
			}); err != nil {
				return
			}
			continue
		}

		cmd, err := command.Interpret(tok)
		if err != nil {
			if s.metrics != nil {
				s.metrics.CommandErrors.Inc()
			}
			log.Debug("command rejected", "error", err)
			if err := s.reply(c, writeTimeout, func() error {
				return c.w.WriteError(formatError(err))
			}); err != nil {
				return
			}
			continue
		}

		if err := s.reply(c, writeTimeout, func() error {
			return s.handler.Handle(c.w, cmd)
		}); err != nil {
			return
		}
	}
}

// reply runs write, then flushes under the write deadline.
func (s *Server) reply(c *Conn, writeTimeout time.Duration, write func() error) error {
	if err := write(); err != nil {
		return err
	}
	if err := c.netConn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.w.Flush()
}

// replyAndClose makes a best-effort error reply before the connection is
// torn down.
func (s *Server) replyAndClose(c *Conn, writeTimeout time.Duration, msg string) {
	_ = c.netConn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = c.w.WriteError(msg)
	_ = c.w.Flush()
}
