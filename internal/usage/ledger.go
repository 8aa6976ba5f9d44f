package usage

import (
	"context"
	"time"

	"sanctify-api/internal/logger"
	"sanctify-api/internal/metrics"
	"sanctify-api/internal/models"
	"sanctify-api/internal/store"
)

// DefaultLimit is the number of free uses per feature per calendar day.
const DefaultLimit = 3

// Ledger enforces the daily free-use quota for metered features.
// Premium accounts bypass it entirely.
type Ledger struct {
	store    store.ProfileStore
	limit    int
	failOpen bool
	now      func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLimit overrides the per-day limit.
func WithLimit(n int) Option {
	return func(l *Ledger) { l.limit = n }
}

// WithFailOpen controls the policy on storage failure: true allows the
// request (availability over correctness), false denies it.
func WithFailOpen(v bool) Option {
	return func(l *Ledger) { l.failOpen = v }
}

// WithClock injects the time source. Tests pin it to a fixed day.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func NewLedger(s store.ProfileStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:    s,
		limit:    DefaultLimit,
		failOpen: true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LocalDate formats t as the zero-padded local calendar date
// (YYYY-MM-DD). Quota resets are keyed on this string, so the reset
// boundary follows the server's local clock. An accepted limitation:
// there is no timezone normalization, matching the client-side
// behavior this service replaced.
func LocalDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// Authorize decides whether uid may use feature right now, counting
// the use if allowed. The whole read-check-increment runs as one
// atomic profile update, so two concurrent calls cannot both consume
// the same remaining slot.
//
// On storage failure the decision falls back to the configured
// fail-open policy and the counter is left untouched.
func (l *Ledger) Authorize(ctx context.Context, uid string, feature models.Feature) bool {
	today := LocalDate(l.now())
	allowed := false

	err := l.store.UpdateProfile(ctx, uid, func(p *models.UserProfile) (bool, error) {
		if p.IsPremium {
			allowed = true
			return false, nil
		}
		rec := p.Usage(feature)
		switch {
		case rec.LastUsed != today:
			// First use of the day (or of a fresh profile).
			p.SetUsage(feature, models.UsageRecord{Count: 1, LastUsed: today})
			allowed = true
			return true, nil
		case rec.Count < l.limit:
			p.SetUsage(feature, models.UsageRecord{Count: rec.Count + 1, LastUsed: today})
			allowed = true
			return true, nil
		default:
			allowed = false
			return false, nil
		}
	})
	if err != nil {
		logger.Error("usage ledger storage failure", "uid", uid, "feature", feature, "fail_open", l.failOpen, "error", err)
		return l.failOpen
	}
	if !allowed {
		metrics.QuotaDeniedTotal.Inc()
	}
	return allowed
}

// Remaining reports how many uses of feature are left today for an
// already-loaded profile. Premium accounts always have the full limit
// remaining.
func (l *Ledger) Remaining(p *models.UserProfile, feature models.Feature) int {
	if p == nil || p.IsPremium {
		return l.limit
	}
	rec := p.Usage(feature)
	if rec.LastUsed != LocalDate(l.now()) {
		return l.limit
	}
	if rec.Count >= l.limit {
		return 0
	}
	return l.limit - rec.Count
}

// Limit returns the configured daily limit.
func (l *Ledger) Limit() int {
	return l.limit
}
