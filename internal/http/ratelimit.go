package http

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultMutationLimit  = 60
	defaultMutationWindow = time.Minute
)

// mutationLimiter caps state-changing requests per client IP. Each client gets
// a fixed window that opens on its first request; reads are never counted.
type mutationLimiter struct {
	limit   int
	window  time.Duration
	routes  map[string]struct{}
	metrics *securityMetrics
	now     func() time.Time

	mu      sync.Mutex
	clients map[string]*clientWindow

	stopSweep chan struct{}
	stopOnce  sync.Once
}

type clientWindow struct {
	opened time.Time
	count  int
}

func newMutationLimiter(limit int, window time.Duration, metrics *securityMetrics, routes ...string) *mutationLimiter {
	if limit <= 0 {
		limit = defaultMutationLimit
	}
	if window <= 0 {
		window = defaultMutationWindow
	}
	l := &mutationLimiter{
		limit:     limit,
		window:    window,
		routes:    make(map[string]struct{}, len(routes)),
		metrics:   metrics,
		now:       time.Now,
		clients:   make(map[string]*clientWindow),
		stopSweep: make(chan struct{}),
	}
	for _, r := range routes {
		l.routes[r] = struct{}{}
	}
	go l.sweepLoop()
	return l
}

// guards reports whether r is a mutation on one of the limited routes.
func (l *mutationLimiter) guards(r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return false
	}
	_, ok := l.routes[r.URL.Path]
	return ok
}

// allow counts one request for clientIP. When the window is exhausted it
// returns false and how long until the window reopens.
func (l *mutationLimiter) allow(clientIP string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.clients[clientIP]
	if !ok || now.Sub(c.opened) >= l.window {
		l.clients[clientIP] = &clientWindow{opened: now, count: 1}
		return true, 0
	}
	if c.count >= l.limit {
		if l.metrics != nil {
			atomic.AddInt64(&l.metrics.rateLimitHits, 1)
		}
		return false, c.opened.Add(l.window).Sub(now)
	}
	c.count++
	return true, 0
}

func (l *mutationLimiter) sweepLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stopSweep:
			return
		}
	}
}

// sweep forgets clients whose window has closed.
func (l *mutationLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for ip, c := range l.clients {
		if now.Sub(c.opened) >= l.window {
			delete(l.clients, ip)
		}
	}
}

func (l *mutationLimiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *mutationLimiter) stop() {
	l.stopOnce.Do(func() { close(l.stopSweep) })
}

// retryAfterSeconds rounds d up to whole seconds, never below one.
func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
