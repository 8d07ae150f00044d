// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"codeberg.org/tscat/tscat/config"
)

// cleanupInterval is the minimum time between two sweeps of idle buckets.
const cleanupInterval = time.Minute

// Settings configures a Limiter.
type Settings struct {
	Rate    float64       // tokens per second
	Burst   int           // bucket size
	PassIPs []string      // addresses or CIDRs that are never limited
	MaxIdle time.Duration // idle buckets older than this are dropped
}

// Limiter holds the token buckets of all clients seen recently.
type Limiter struct {
	settings Settings
	clients  sync.Map // client IP -> *clientBucket
	now      func() time.Time

	lastCleanup atomic.Int64 // unix nanoseconds
	sweeping    atomic.Bool
}

// clientBucket is the rate limiter of one client address.
type clientBucket struct {
	limiter    *rate.Limiter
	lastAccess atomic.Int64 // unix nanoseconds
}

// New creates a limiter with the given settings.
func New(s Settings) *Limiter {
	l := &Limiter{settings: s, now: time.Now}
	l.lastCleanup.Store(l.now().UnixNano())

	return l
}

// FromConfig creates a limiter from the Limiter section of the global
// configuration.
func FromConfig() *Limiter {
	cfg := config.Global.Limiter

	log.Info().
		Float64("rate", cfg.Rate).
		Int("burst", cfg.Burst).
		Int("pass_ips", len(cfg.PassIPs)).
		Msg("Limiter enabled")

	return New(Settings{
		Rate:    cfg.Rate,
		Burst:   cfg.Burst,
		PassIPs: cfg.PassIPs,
		MaxIdle: cfg.MaxIdle,
	})
}

// bucket returns the bucket of ip, creating it on first use.
func (l *Limiter) bucket(ip string, now time.Time) *clientBucket {
	if v, ok := l.clients.Load(ip); ok {
		b := v.(*clientBucket)
		b.lastAccess.Store(now.UnixNano())

		return b
	}

	b := &clientBucket{limiter: rate.NewLimiter(rate.Limit(l.settings.Rate), l.settings.Burst)}
	b.lastAccess.Store(now.UnixNano())

	v, _ := l.clients.LoadOrStore(ip, b)

	return v.(*clientBucket)
}

// allow consumes one token of ip's bucket. It returns whether the request
// may proceed and the tokens left afterwards.
func (l *Limiter) allow(ip string, now time.Time) (bool, int) {
	b := l.bucket(ip, now)

	ok := b.limiter.AllowN(now, 1)

	return ok, max(0, int(b.limiter.TokensAt(now)))
}

// maybeCleanup starts a sweep of idle buckets when the last one is older
// than cleanupInterval.
func (l *Limiter) maybeCleanup(now time.Time) {
	last := l.lastCleanup.Load()
	if now.UnixNano()-last < int64(cleanupInterval) || !l.lastCleanup.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	if !l.sweeping.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer l.sweeping.Store(false)

		removed := l.cleanup(now)

		log.Debug().
			Int("removed", removed).
			Dur("dur", time.Since(now)).
			Msg("Limiter cleanup")
	}()
}

// cleanup drops the buckets idle for longer than MaxIdle and returns how
// many were removed.
func (l *Limiter) cleanup(now time.Time) int {
	if l.settings.MaxIdle <= 0 {
		return 0
	}

	cutoff := now.Add(-l.settings.MaxIdle).UnixNano()
	removed := 0

	l.clients.Range(func(key, value any) bool {
		if value.(*clientBucket).lastAccess.Load() < cutoff {
			l.clients.Delete(key)

			removed++
		}

		return true
	})

	return removed
}
