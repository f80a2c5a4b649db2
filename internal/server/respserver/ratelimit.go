package respserver

import (
	"net"
	"sync"

	"golang.org/x/time/rate"
)

// maxLimiters bounds the per-IP bucket map so a scan across many source
// addresses cannot grow it without limit. Evicted IPs simply start a
// fresh bucket on their next command.
const maxLimiters = 4096

// ipLimiter applies a per-IP token bucket to incoming commands.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// newIPLimiter creates a limiter allowing perSecond commands per IP.
// Returns nil when perSecond is zero, which disables limiting.
func newIPLimiter(perSecond int) *ipLimiter {
	if perSecond <= 0 {
		return nil
	}
	return &ipLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    perSecond,
	}
}

// allow reports whether a command from the given remote address may run.
func (l *ipLimiter) allow(remoteAddr string) bool {
	ip, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		ip = remoteAddr
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[ip]
	if !ok {
		if len(l.limiters) >= maxLimiters {
			for k := range l.limiters {
				delete(l.limiters, k)
				break
			}
		}
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = lim
	}
	return lim.Allow()
}
