package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"sanctify-api/internal/models"
)

// Memory is an in-memory Store used by tests and local development.
// It mirrors the Firestore semantics: UpdateProfile bootstraps a
// missing profile, adds assign generated IDs and a write timestamp,
// deletes of unknown IDs succeed.
type Memory struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile
	verses   map[string]map[string]models.SavedVerse
	notes    map[string]map[string]models.SermonNote
	prayers  map[string]map[string]models.SavedPrayer

	// Err, when set, is returned by every operation. Tests use it to
	// exercise the ledger's fail-open and fail-closed paths.
	Err error
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		profiles: make(map[string]models.UserProfile),
		verses:   make(map[string]map[string]models.SavedVerse),
		notes:    make(map[string]map[string]models.SermonNote),
		prayers:  make(map[string]map[string]models.SavedPrayer),
	}
}

func (m *Memory) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.profiles[uid]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (m *Memory) CreateProfile(ctx context.Context, p *models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	existing, ok := m.profiles[p.UID]
	if !ok {
		m.profiles[p.UID] = *p
		return nil
	}
	// Merge semantics: profile fields only, usage counters survive.
	existing.Email = p.Email
	existing.DisplayName = p.DisplayName
	existing.CreatedAt = p.CreatedAt
	m.profiles[p.UID] = existing
	return nil
}

func (m *Memory) UpdateDisplayName(ctx context.Context, uid, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	p, ok := m.profiles[uid]
	if !ok {
		return ErrNotFound
	}
	p.DisplayName = name
	m.profiles[uid] = p
	return nil
}

func (m *Memory) UpdateProfile(ctx context.Context, uid string, fn func(p *models.UserProfile) (bool, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	p, ok := m.profiles[uid]
	if !ok {
		p = models.UserProfile{UID: uid, CreatedAt: time.Now()}
	}
	write, err := fn(&p)
	if err != nil {
		return err
	}
	if write {
		m.profiles[uid] = p
	}
	return nil
}

func (m *Memory) SetPremium(ctx context.Context, uid string, startedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	p := m.profiles[uid]
	p.UID = uid
	p.IsPremium = true
	p.PremiumStartedAt = &startedAt
	m.profiles[uid] = p
	return nil
}

func (m *Memory) ListVerses(ctx context.Context, uid string) ([]models.SavedVerse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.SavedVerse{}
	for _, v := range m.verses[uid] {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

func (m *Memory) AddVerse(ctx context.Context, uid string, v models.SavedVerse) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if m.verses[uid] == nil {
		m.verses[uid] = make(map[string]models.SavedVerse)
	}
	v.ID = uuid.NewString()
	if v.SavedAt.IsZero() {
		v.SavedAt = time.Now()
	}
	m.verses[uid][v.ID] = v
	return v.ID, nil
}

func (m *Memory) DeleteVerse(ctx context.Context, uid, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.verses[uid], id)
	return nil
}

func (m *Memory) ListSermonNotes(ctx context.Context, uid string) ([]models.SermonNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.SermonNote{}
	for _, n := range m.notes[uid] {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

func (m *Memory) AddSermonNote(ctx context.Context, uid string, n models.SermonNote) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if m.notes[uid] == nil {
		m.notes[uid] = make(map[string]models.SermonNote)
	}
	n.ID = uuid.NewString()
	if n.SavedAt.IsZero() {
		n.SavedAt = time.Now()
	}
	m.notes[uid][n.ID] = n
	return n.ID, nil
}

func (m *Memory) DeleteSermonNote(ctx context.Context, uid, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.notes[uid], id)
	return nil
}

func (m *Memory) ListPrayers(ctx context.Context, uid string) ([]models.SavedPrayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.SavedPrayer{}
	for _, p := range m.prayers[uid] {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

func (m *Memory) AddPrayer(ctx context.Context, uid string, p models.SavedPrayer) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if m.prayers[uid] == nil {
		m.prayers[uid] = make(map[string]models.SavedPrayer)
	}
	p.ID = uuid.NewString()
	if p.SavedAt.IsZero() {
		p.SavedAt = time.Now()
	}
	m.prayers[uid][p.ID] = p
	return p.ID, nil
}

func (m *Memory) DeletePrayer(ctx context.Context, uid, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.prayers[uid], id)
	return nil
}
