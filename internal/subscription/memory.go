package subscription

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps subscriptions in a process-local map. Used for local
// runs without a database and in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]Subscription
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[uuid.UUID]Subscription),
		now:   utcNow,
	}
}

func (m *MemoryStore) Create(ctx context.Context, owner uuid.UUID, f Fields) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return Subscription{}, err
	}

	sub, err := newRecord(owner, f, m.now())
	if err != nil {
		return Subscription{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[sub.ID] = sub
	return sub, nil
}

func (m *MemoryStore) FindByID(ctx context.Context, id uuid.UUID) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return Subscription{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.items[id]
	if !ok {
		return Subscription{}, ErrNotFound
	}
	return sub, nil
}

func (m *MemoryStore) FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	subs := make([]Subscription, 0)
	for _, sub := range m.items {
		if sub.Owner == owner {
			subs = append(subs, sub)
		}
	}
	m.mu.RUnlock()

	sort.Slice(subs, func(i, j int) bool {
		if !subs[i].CreatedAt.Equal(subs[j].CreatedAt) {
			return subs[i].CreatedAt.After(subs[j].CreatedAt)
		}
		return bytes.Compare(subs[i].ID[:], subs[j].ID[:]) > 0
	})
	return subs, nil
}

func (m *MemoryStore) Update(ctx context.Context, id uuid.UUID, f Fields) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return Subscription{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.items[id]
	if !ok {
		return Subscription{}, ErrNotFound
	}
	next, err := applyFields(cur, f, m.now())
	if err != nil {
		return Subscription{}, err
	}
	m.items[id] = next
	return next, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}
