package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ruteri/trainer-intake/interfaces"
)

// MemoryStore is an in-process interfaces.TrainerStore used for local runs and
// tests. It enforces the same cref uniqueness as the database.
type MemoryStore struct {
	mu      sync.RWMutex
	records []interfaces.TrainerApplication
	crefs   map[string]struct{}
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		crefs: make(map[string]struct{}),
		now:   time.Now,
	}
}

func (m *MemoryStore) Create(ctx context.Context, app *interfaces.TrainerApplication) (*interfaces.TrainerApplication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.crefs[app.Cref]; exists {
		return nil, interfaces.ErrDuplicateCref
	}

	out := *app
	out.CreatedAt = m.now().UTC()
	m.records = append(m.records, out)
	m.crefs[app.Cref] = struct{}{}
	return &out, nil
}

func (m *MemoryStore) List(ctx context.Context, limit int) ([]interfaces.TrainerApplication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	out := make([]interfaces.TrainerApplication, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0; i-- {
		out = append(out, m.records[i])
	}
	m.mu.RUnlock()

	// Later inserts win ties.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
