package common

import (
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimit applies a token bucket per client address. A non positive
// requests or interval disables limiting.
func RateLimit(requests int, interval time.Duration, next http.Handler) http.Handler {
	if requests <= 0 || interval <= 0 {
		return next
	}
	perRequest := interval / time.Duration(requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	var mu sync.Mutex
	limiters := make(map[string]*clientLimiter)
	lastSweep := time.Now()

	limiterFor := func(key string, now time.Time) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if now.Sub(lastSweep) > 10*interval {
			for k, l := range limiters {
				if now.Sub(l.seen) > interval {
					delete(limiters, k)
				}
			}
			lastSweep = now
		}
		l, ok := limiters[key]
		if !ok {
			l = &clientLimiter{limiter: rate.NewLimiter(rate.Every(perRequest), requests)}
			limiters[key] = l
		}
		l.seen = now
		return l.limiter
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiterFor(clientAddress(r), time.Now()).Allow() {
			w.Header().Set("Retry-After", "1")
			WriteError(w, r, NewHttpError(http.StatusTooManyRequests, errors.New("rate limit exceeded")))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type clientLimiter struct {
	limiter *rate.Limiter
	seen    time.Time
}

func clientAddress(r *http.Request) string {
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
