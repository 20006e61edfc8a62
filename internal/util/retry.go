// ABOUTME: Retry backoff calculation for OpenAI API calls
// ABOUTME: Exponential growth with jitter, bounded by a caller-supplied ceiling
package util

import (
	"math/rand/v2"
	"time"
)

// DefaultMaxBackoff bounds retry waits when the caller gives no ceiling.
// Replies feed a live voice channel, so stalls stay short.
const DefaultMaxBackoff = 5 * time.Second

// CalculateBackoff returns the wait before retry number attempt: baseDelay
// doubled each attempt with random jitter up to 25%, never exceeding
// ceiling (or DefaultMaxBackoff when ceiling is zero or negative).
func CalculateBackoff(baseDelay time.Duration, attempt int, ceiling time.Duration) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if ceiling <= 0 {
		ceiling = DefaultMaxBackoff
	}
	// Cap attempt to avoid overflow in bit shift
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > ceiling || backoff <= 0 {
		backoff = ceiling
	}
	// Jitter: -25% to +25% using auto-seeded math/rand/v2
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
