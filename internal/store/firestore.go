package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sanctify-api/internal/metrics"
	"sanctify-api/internal/models"
)

const (
	usersCollection       = "users"
	versesCollection      = "saved_verses"
	sermonNotesCollection = "sermon_notes"
	prayersCollection     = "saved_prayers"
)

// Firestore backs the document store with Cloud Firestore. Profile
// documents live at users/{uid}; archive entries live in per-user
// subcollections keyed by auto-generated document IDs.
type Firestore struct {
	client *firestore.Client
}

var _ Store = (*Firestore)(nil)

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func (s *Firestore) userDoc(uid string) *firestore.DocumentRef {
	return s.client.Collection(usersCollection).Doc(uid)
}

func (s *Firestore) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	snap, err := s.userDoc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	var p models.UserProfile
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	p.UID = uid
	return &p, nil
}

// signupDoc is the merge payload written at signup. MergeAll requires
// map data, and the map must carry only identity fields so a concurrent
// ledger bootstrap's counters survive the merge.
func signupDoc(p *models.UserProfile) map[string]interface{} {
	return map[string]interface{}{
		"uid":         p.UID,
		"email":       p.Email,
		"displayName": p.DisplayName,
		"createdAt":   p.CreatedAt,
	}
}

func (s *Firestore) CreateProfile(ctx context.Context, p *models.UserProfile) error {
	start := time.Now()
	_, err := s.userDoc(p.UID).Set(ctx, signupDoc(p), firestore.MergeAll)
	metrics.StoreWriteDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *Firestore) UpdateDisplayName(ctx context.Context, uid, name string) error {
	start := time.Now()
	_, err := s.userDoc(uid).Update(ctx, []firestore.Update{
		{Path: "displayName", Value: name},
	})
	metrics.StoreWriteDurationSeconds.Observe(time.Since(start).Seconds())
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update display name: %w", err)
	}
	return nil
}

// UpdateProfile runs fn inside a Firestore transaction so the ledger's
// read-check-increment is a single conditional update rather than a
// racy read-then-write.
func (s *Firestore) UpdateProfile(ctx context.Context, uid string, fn func(p *models.UserProfile) (bool, error)) error {
	doc := s.userDoc(uid)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		p := &models.UserProfile{UID: uid}
		snap, err := tx.Get(doc)
		switch {
		case err == nil:
			if err := snap.DataTo(p); err != nil {
				return fmt.Errorf("decode profile: %w", err)
			}
			p.UID = uid
		case status.Code(err) == codes.NotFound:
			// Profile should exist from signup; bootstrap it here so a
			// missing document never blocks the user.
			p.CreatedAt = time.Now()
		default:
			return fmt.Errorf("get profile: %w", err)
		}

		write, err := fn(p)
		if err != nil || !write {
			return err
		}
		start := time.Now()
		err = tx.Set(doc, p)
		metrics.StoreWriteDurationSeconds.Observe(time.Since(start).Seconds())
		return err
	})
}

func (s *Firestore) SetPremium(ctx context.Context, uid string, startedAt time.Time) error {
	start := time.Now()
	_, err := s.userDoc(uid).Set(ctx, map[string]interface{}{
		"isPremium":        true,
		"premiumStartedAt": startedAt,
	}, firestore.MergeAll)
	metrics.StoreWriteDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("set premium: %w", err)
	}
	return nil
}

// Ping verifies Firestore connectivity with a cheap single-document read.
func (s *Firestore) Ping(ctx context.Context) error {
	iter := s.client.Collection(usersCollection).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return err
	}
	return nil
}

func (s *Firestore) ListVerses(ctx context.Context, uid string) ([]models.SavedVerse, error) {
	iter := s.userDoc(uid).Collection(versesCollection).
		OrderBy("savedAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	verses := []models.SavedVerse{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list verses: %w", err)
		}
		var v models.SavedVerse
		if err := snap.DataTo(&v); err != nil {
			return nil, fmt.Errorf("decode verse %s: %w", snap.Ref.ID, err)
		}
		v.ID = snap.Ref.ID
		verses = append(verses, v)
	}
	return verses, nil
}

func (s *Firestore) AddVerse(ctx context.Context, uid string, v models.SavedVerse) (string, error) {
	return s.add(ctx, uid, versesCollection, &v)
}

func (s *Firestore) DeleteVerse(ctx context.Context, uid, id string) error {
	return s.delete(ctx, uid, versesCollection, id)
}

func (s *Firestore) ListSermonNotes(ctx context.Context, uid string) ([]models.SermonNote, error) {
	iter := s.userDoc(uid).Collection(sermonNotesCollection).
		OrderBy("savedAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	notes := []models.SermonNote{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list sermon notes: %w", err)
		}
		var n models.SermonNote
		if err := snap.DataTo(&n); err != nil {
			return nil, fmt.Errorf("decode sermon note %s: %w", snap.Ref.ID, err)
		}
		n.ID = snap.Ref.ID
		notes = append(notes, n)
	}
	return notes, nil
}

func (s *Firestore) AddSermonNote(ctx context.Context, uid string, n models.SermonNote) (string, error) {
	return s.add(ctx, uid, sermonNotesCollection, &n)
}

func (s *Firestore) DeleteSermonNote(ctx context.Context, uid, id string) error {
	return s.delete(ctx, uid, sermonNotesCollection, id)
}

func (s *Firestore) ListPrayers(ctx context.Context, uid string) ([]models.SavedPrayer, error) {
	iter := s.userDoc(uid).Collection(prayersCollection).
		OrderBy("savedAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	prayers := []models.SavedPrayer{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list prayers: %w", err)
		}
		var p models.SavedPrayer
		if err := snap.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode prayer %s: %w", snap.Ref.ID, err)
		}
		p.ID = snap.Ref.ID
		prayers = append(prayers, p)
	}
	return prayers, nil
}

func (s *Firestore) AddPrayer(ctx context.Context, uid string, p models.SavedPrayer) (string, error) {
	return s.add(ctx, uid, prayersCollection, &p)
}

func (s *Firestore) DeletePrayer(ctx context.Context, uid, id string) error {
	return s.delete(ctx, uid, prayersCollection, id)
}

// add appends an entry with an auto-generated ID. The savedAt field
// carries the serverTimestamp tag, so the write timestamp is assigned
// by Firestore, not the client clock.
func (s *Firestore) add(ctx context.Context, uid, collection string, entry interface{}) (string, error) {
	ref := s.userDoc(uid).Collection(collection).NewDoc()
	start := time.Now()
	_, err := ref.Set(ctx, entry)
	metrics.StoreWriteDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("add %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (s *Firestore) delete(ctx context.Context, uid, collection, id string) error {
	start := time.Now()
	_, err := s.userDoc(uid).Collection(collection).Doc(id).Delete(ctx)
	metrics.StoreWriteDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}
