package respserver

import (
	"errors"
	"time"

	"github.com/yndnr/kvmesh-go/internal/command"
	"github.com/yndnr/kvmesh-go/internal/core/domain"
	"github.com/yndnr/kvmesh-go/internal/protocol"
	"github.com/yndnr/kvmesh-go/internal/storage/keyspace"
	"github.com/yndnr/kvmesh-go/internal/telemetry/logger"
	"github.com/yndnr/kvmesh-go/internal/telemetry/metric"
)

// formatError converts an error to a wire error string.
// For DomainErrors, returns "ERR <code> <message>".
func formatError(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return "ERR " + de.Code + " " + de.Message
	}
	return "ERR " + err.Error()
}

// Handler executes commands against the keyspace store and writes the
// reply frame. Store errors never terminate a connection; every outcome
// maps to a reply.
type Handler struct {
	store   *keyspace.Store
	log     logger.Logger
	metrics *metric.Registry
}

// NewHandler creates a Handler. metrics may be nil.
func NewHandler(store *keyspace.Store, log logger.Logger, metrics *metric.Registry) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		store:   store,
		log:     log,
		metrics: metrics,
	}
}

// Handle executes cmd and writes exactly one reply frame to w.
// The caller is responsible for flushing.
func (h *Handler) Handle(w *protocol.Writer, cmd command.Command) error {
	start := time.Now()
	err := h.execute(w, cmd)
	if h.metrics != nil {
		h.metrics.CommandsTotal.WithLabelValues(cmd.Name()).Inc()
		h.metrics.CommandDuration.WithLabelValues(cmd.Name()).Observe(time.Since(start).Seconds())
	}
	return err
}

func (h *Handler) execute(w *protocol.Writer, cmd command.Command) error {
	switch c := cmd.(type) {
	case command.Ping:
		return w.WriteSimpleString("PONG")

	case command.Echo:
		return w.WriteSimpleString(c.Message)

	case command.Set:
		h.store.Set(c.Key, c.Value, c.TTL)
		return w.WriteSimpleString("OK")

	case command.Get:
		entry, err := h.store.Get(c.Key)
		switch {
		case err == nil:
			return w.WriteSimpleString(entry.Data)
		case errors.Is(err, domain.ErrKeyExpired):
			// Distinguishes "timed out" from "never set" on the wire.
			if h.metrics != nil {
				h.metrics.ExpiredReads.Inc()
			}
			return w.WriteNullBulk()
		default:
			return w.WriteError(formatError(err))
		}

	default:
		return w.WriteError(formatError(domain.ErrUnknownCommand))
	}
}
