package models

import (
	"time"
)

// Feature identifies a metered capability. Usage counts are tracked
// per (user, feature) pair.
type Feature string

const (
	FeaturePrayer   Feature = "prayer"
	FeatureDeepDive Feature = "deepDive"
)

// UsageRecord is a per-feature daily counter embedded in the user
// profile document. LastUsed is a local calendar date (YYYY-MM-DD,
// no time component).
type UsageRecord struct {
	Count    int    `firestore:"count" json:"count"`
	LastUsed string `firestore:"lastUsed" json:"lastUsed"`
}

// UserProfile mirrors users/{uid}.
type UserProfile struct {
	UID              string      `firestore:"uid" json:"uid"`
	Email            string      `firestore:"email" json:"email"`
	DisplayName      string      `firestore:"displayName" json:"display_name"`
	IsPremium        bool        `firestore:"isPremium" json:"is_premium"`
	PremiumStartedAt *time.Time  `firestore:"premiumStartedAt,omitempty" json:"premium_started_at,omitempty"`
	PrayerUsage      UsageRecord `firestore:"prayerUsage" json:"prayer_usage"`
	DeepDiveUsage    UsageRecord `firestore:"deepDiveUsage" json:"deep_dive_usage"`
	CreatedAt        time.Time   `firestore:"createdAt" json:"created_at"`
}

// Usage returns the counter for a feature. Unknown features read as a
// zero record, which the ledger treats as never used.
func (p *UserProfile) Usage(f Feature) UsageRecord {
	switch f {
	case FeaturePrayer:
		return p.PrayerUsage
	case FeatureDeepDive:
		return p.DeepDiveUsage
	}
	return UsageRecord{}
}

// SetUsage stores the counter for a feature.
func (p *UserProfile) SetUsage(f Feature, rec UsageRecord) {
	switch f {
	case FeaturePrayer:
		p.PrayerUsage = rec
	case FeatureDeepDive:
		p.DeepDiveUsage = rec
	}
}

// SavedVerse is an entry in users/{uid}/saved_verses.
type SavedVerse struct {
	ID           string    `firestore:"-" json:"id"`
	Reference    string    `firestore:"reference" json:"reference"`
	Text         string    `firestore:"text" json:"text"`
	OriginalWord string    `firestore:"originalWord" json:"original_word"`
	Meaning      string    `firestore:"meaning" json:"meaning"`
	SavedAt      time.Time `firestore:"savedAt,serverTimestamp" json:"saved_at"`
}

// SermonNote is an entry in users/{uid}/sermon_notes.
type SermonNote struct {
	ID       string    `firestore:"-" json:"id"`
	Title    string    `firestore:"title" json:"title"`
	Preacher string    `firestore:"preacher" json:"preacher"`
	Date     string    `firestore:"date" json:"date"`
	Duration string    `firestore:"duration" json:"duration"`
	Badge    string    `firestore:"badge" json:"badge"`
	Content  string    `firestore:"content" json:"content"`
	SavedAt  time.Time `firestore:"savedAt,serverTimestamp" json:"saved_at"`
}

// SavedPrayer is an entry in users/{uid}/saved_prayers.
type SavedPrayer struct {
	ID      string    `firestore:"-" json:"id"`
	Title   string    `firestore:"title" json:"title"`
	Body    string    `firestore:"body" json:"body"`
	Amen    string    `firestore:"amen" json:"amen"`
	Theme   string    `firestore:"theme" json:"theme"`
	SavedAt time.Time `firestore:"savedAt,serverTimestamp" json:"saved_at"`
}

// Order is a payment order row in the billing ledger (MySQL).
type Order struct {
	OrderID    string     `json:"order_id"`
	UserID     string     `json:"user_id"`
	Reference  string     `json:"reference"`
	Amount     string     `json:"amount"`
	Currency   string     `json:"currency"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
}

// Order statuses recorded in the billing ledger.
const (
	OrderStatusCreated   = "CREATED"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusSimulated = "SIMULATED"
)

// Verse is one entry of a scripture chapter as served by the public
// text source.
type Verse struct {
	Verse int    `json:"verse"`
	Text  string `json:"text"`
}

// HealthResponse reports dependency status for /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Firestore string `json:"firestore"`
}
