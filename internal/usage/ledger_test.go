package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"sanctify-api/internal/models"
	"sanctify-api/internal/store"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAuthorizeBootstrapsMissingProfile(t *testing.T) {
	mem := store.NewMemory()
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	ledger := NewLedger(mem, WithClock(fixedClock(day)))

	if !ledger.Authorize(context.Background(), "u1", models.FeaturePrayer) {
		t.Fatal("first authorize for a new user should be allowed")
	}

	p, err := mem.GetProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("profile should have been created: %v", err)
	}
	rec := p.Usage(models.FeaturePrayer)
	if rec.Count != 1 || rec.LastUsed != "2026-03-14" {
		t.Fatalf("got count=%d lastUsed=%q, want 1 and 2026-03-14", rec.Count, rec.LastUsed)
	}
}

func TestAuthorizeLimitSequence(t *testing.T) {
	mem := store.NewMemory()
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	ledger := NewLedger(mem, WithClock(fixedClock(day)))
	ctx := context.Background()

	for i := 1; i <= DefaultLimit; i++ {
		if !ledger.Authorize(ctx, "u1", models.FeaturePrayer) {
			t.Fatalf("call %d should be allowed", i)
		}
		p, _ := mem.GetProfile(ctx, "u1")
		if got := p.Usage(models.FeaturePrayer).Count; got != i {
			t.Fatalf("after call %d count = %d", i, got)
		}
	}

	if ledger.Authorize(ctx, "u1", models.FeaturePrayer) {
		t.Fatal("fourth call should be denied")
	}
	p, _ := mem.GetProfile(ctx, "u1")
	if got := p.Usage(models.FeaturePrayer).Count; got != DefaultLimit {
		t.Fatalf("denied call mutated counter: count = %d", got)
	}
}

func TestAuthorizeFeaturesCountIndependently(t *testing.T) {
	mem := store.NewMemory()
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	ledger := NewLedger(mem, WithClock(fixedClock(day)))
	ctx := context.Background()

	for i := 0; i < DefaultLimit; i++ {
		if !ledger.Authorize(ctx, "u1", models.FeaturePrayer) {
			t.Fatalf("prayer call %d denied", i+1)
		}
	}
	if ledger.Authorize(ctx, "u1", models.FeaturePrayer) {
		t.Fatal("prayer should be exhausted")
	}
	if !ledger.Authorize(ctx, "u1", models.FeatureDeepDive) {
		t.Fatal("deepDive quota should be independent of prayer")
	}
}

func TestAuthorizePremiumBypassesAndDoesNotMutate(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	mem.CreateProfile(ctx, &models.UserProfile{
		UID:         "u1",
		IsPremium:   true,
		PrayerUsage: models.UsageRecord{Count: 3, LastUsed: "2026-03-14"},
	})
	day := time.Date(2026, 3, 14, 23, 0, 0, 0, time.Local)
	ledger := NewLedger(mem, WithClock(fixedClock(day)))

	for i := 0; i < 10; i++ {
		if !ledger.Authorize(ctx, "u1", models.FeaturePrayer) {
			t.Fatalf("premium call %d denied", i+1)
		}
	}
	p, _ := mem.GetProfile(ctx, "u1")
	if got := p.Usage(models.FeaturePrayer).Count; got != 3 {
		t.Fatalf("premium authorize mutated counter: count = %d", got)
	}
}

func TestAuthorizeResetsOnStaleDate(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	mem.CreateProfile(ctx, &models.UserProfile{UID: "u1"})
	mem.UpdateProfile(ctx, "u1", func(p *models.UserProfile) (bool, error) {
		p.SetUsage(models.FeatureDeepDive, models.UsageRecord{Count: 3, LastUsed: "2026-03-13"})
		return true, nil
	})

	day := time.Date(2026, 3, 14, 0, 5, 0, 0, time.Local)
	ledger := NewLedger(mem, WithClock(fixedClock(day)))

	if !ledger.Authorize(ctx, "u1", models.FeatureDeepDive) {
		t.Fatal("stale date should reset and allow")
	}
	p, _ := mem.GetProfile(ctx, "u1")
	rec := p.Usage(models.FeatureDeepDive)
	if rec.Count != 1 || rec.LastUsed != "2026-03-14" {
		t.Fatalf("got count=%d lastUsed=%q, want reset to 1 and today", rec.Count, rec.LastUsed)
	}
}

func TestAuthorizeStorageFailurePolicy(t *testing.T) {
	tests := []struct {
		name     string
		failOpen bool
		want     bool
	}{
		{"fail open allows", true, true},
		{"fail closed denies", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := store.NewMemory()
			mem.Err = errors.New("firestore unavailable")
			ledger := NewLedger(mem, WithFailOpen(tt.failOpen))
			if got := ledger.Authorize(context.Background(), "u1", models.FeaturePrayer); got != tt.want {
				t.Fatalf("Authorize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemaining(t *testing.T) {
	day := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	ledger := NewLedger(store.NewMemory(), WithClock(fixedClock(day)))

	tests := []struct {
		name    string
		profile *models.UserProfile
		want    int
	}{
		{"nil profile", nil, 3},
		{"premium", &models.UserProfile{IsPremium: true, PrayerUsage: models.UsageRecord{Count: 3, LastUsed: "2026-03-14"}}, 3},
		{"unused today", &models.UserProfile{PrayerUsage: models.UsageRecord{Count: 3, LastUsed: "2026-03-13"}}, 3},
		{"partially used", &models.UserProfile{PrayerUsage: models.UsageRecord{Count: 2, LastUsed: "2026-03-14"}}, 1},
		{"exhausted", &models.UserProfile{PrayerUsage: models.UsageRecord{Count: 3, LastUsed: "2026-03-14"}}, 0},
		{"over limit", &models.UserProfile{PrayerUsage: models.UsageRecord{Count: 7, LastUsed: "2026-03-14"}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ledger.Remaining(tt.profile, models.FeaturePrayer); got != tt.want {
				t.Fatalf("Remaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLocalDate(t *testing.T) {
	got := LocalDate(time.Date(2026, 1, 5, 23, 59, 0, 0, time.Local))
	if got != "2026-01-05" {
		t.Fatalf("LocalDate() = %q, want zero-padded 2026-01-05", got)
	}
}
