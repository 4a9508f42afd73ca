package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/infrastructure-search/internal/pkg/errors"
	"github.com/infrastructure-search/internal/pkg/utils"
)

// IPRateLimiter - token bucket на каждый IP. Давно не встречавшиеся
// адреса забываются при очередной очистке.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	r        rate.Limit
	b        int
	ttl      time.Duration
	lastGC   time.Time
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*ipLimiter),
		r:        r,
		b:        b,
		ttl:      10 * time.Minute,
		lastGC:   time.Now(),
	}
}

// Allow расходует один токен лимитера адреса
func (l *IPRateLimiter) Allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > l.ttl {
		for key, v := range l.limiters {
			if now.Sub(v.lastSeen) > l.ttl {
				delete(l.limiters, key)
			}
		}
		l.lastGC = now
	}

	v, ok := l.limiters[ip]
	if !ok {
		v = &ipLimiter{limiter: rate.NewLimiter(l.r, l.b)}
		l.limiters[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// RateLimit ограничивает частоту запросов с одного IP
func RateLimit(rps float64, burst int) fiber.Handler {
	limiter := NewIPRateLimiter(rate.Limit(rps), burst)
	return func(c *fiber.Ctx) error {
		if !limiter.Allow(c.IP()) {
			return utils.SendError(c, errors.ErrTooManyRequests)
		}
		return c.Next()
	}
}
