package http

import rl "github.com/rogerio-castellano/kirana-pos/internal/http/rate_limiter"

var limiter *rl.Limiter

// SetRateLimiter enables per-IP rate limiting; nil disables it.
func SetRateLimiter(l *rl.Limiter) {
	limiter = l
}
