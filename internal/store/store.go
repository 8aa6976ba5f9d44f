package store

import (
	"context"
	"errors"
	"time"

	"sanctify-api/internal/models"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("store: not found")

// ProfileStore manages users/{uid} profile documents.
type ProfileStore interface {
	// GetProfile returns the profile or ErrNotFound.
	GetProfile(ctx context.Context, uid string) (*models.UserProfile, error)

	// CreateProfile writes a new profile document at signup. It merges
	// over any existing document so a concurrent ledger bootstrap is
	// not clobbered.
	CreateProfile(ctx context.Context, p *models.UserProfile) error

	// UpdateDisplayName changes only the display name.
	UpdateDisplayName(ctx context.Context, uid, name string) error

	// UpdateProfile loads the profile (a zero profile if absent),
	// applies fn, and writes it back when fn returns true. Load, fn,
	// and write run as a single atomic unit against the backing store.
	UpdateProfile(ctx context.Context, uid string, fn func(p *models.UserProfile) (write bool, err error)) error

	// SetPremium flips the premium flag and records when it started.
	SetPremium(ctx context.Context, uid string, startedAt time.Time) error
}

// ContentStore manages the per-user append-only archive collections.
type ContentStore interface {
	ListVerses(ctx context.Context, uid string) ([]models.SavedVerse, error)
	AddVerse(ctx context.Context, uid string, v models.SavedVerse) (string, error)
	DeleteVerse(ctx context.Context, uid, id string) error

	ListSermonNotes(ctx context.Context, uid string) ([]models.SermonNote, error)
	AddSermonNote(ctx context.Context, uid string, n models.SermonNote) (string, error)
	DeleteSermonNote(ctx context.Context, uid, id string) error

	ListPrayers(ctx context.Context, uid string) ([]models.SavedPrayer, error)
	AddPrayer(ctx context.Context, uid string, p models.SavedPrayer) (string, error)
	DeletePrayer(ctx context.Context, uid, id string) error
}

// Store is the full document store surface.
type Store interface {
	ProfileStore
	ContentStore
}
