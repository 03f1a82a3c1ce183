package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sebuszqo/SeasonLedger/internal/log"
	"golang.org/x/time/rate"
)

const (
	visitorEvictionSchedule = "@every 1m"
	visitorTTL              = 3 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginRateLimiter keeps one token bucket per client IP.
type LoginRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
	respond  func(w http.ResponseWriter, status int, message string)
}

func NewLoginRateLimiter(perSecond float64, burst int, respondError func(w http.ResponseWriter, status int, message string)) *LoginRateLimiter {
	return &LoginRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
		respond:  respondError,
	}
}

func (rl *LoginRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = rl.now()
	return v.limiter.AllowN(v.lastSeen, 1)
}

// StartEviction schedules removal of visitors idle for longer than
// visitorTTL. The caller stops the returned scheduler on shutdown.
func (rl *LoginRateLimiter) StartEviction() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(visitorEvictionSchedule, rl.evictStale); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

func (rl *LoginRateLimiter) evictStale() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if rl.now().Sub(v.lastSeen) > visitorTTL {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *LoginRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := log.ClientIP(r)
		if !rl.allow(ip) {
			log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).
				WarnContext(r.Context(), "login rate limit exceeded", log.FieldClientIP, ip)
			rl.respond(w, http.StatusTooManyRequests, "Too many login attempts")
			return
		}
		next.ServeHTTP(w, r)
	})
}
