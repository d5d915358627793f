package collision

import "time"

// breaker tracks callback failures for one collidable. It opens after a run
// of consecutive failures and closes once the cooldown since the last
// failure has elapsed.
type breaker struct {
	consecutive int
	total       int
	open        bool
	lastFailure time.Time
}

// fail records a failure and reports whether it opened the breaker.
func (b *breaker) fail(now time.Time, threshold int) bool {
	b.consecutive++
	b.total++
	b.lastFailure = now
	if !b.open && threshold > 0 && b.consecutive >= threshold {
		b.open = true
		return true
	}
	return false
}

// succeed resets the consecutive failure count.
func (b *breaker) succeed() {
	b.consecutive = 0
}

// tryClose closes an open breaker whose cooldown has elapsed and reports
// whether it did.
func (b *breaker) tryClose(now time.Time, cooldown time.Duration) bool {
	if !b.open || now.Sub(b.lastFailure) < cooldown {
		return false
	}
	b.open = false
	b.consecutive = 0
	return true
}
