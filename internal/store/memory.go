package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"IndexIndicator/internal/model"
)

// MemoryStore is an in-process Store used when no database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	daily  map[string][]model.DailyRecord // lower-cased symbol -> records sorted by date
	fgis   map[string]model.FearGreed     // date -> reading
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		daily: make(map[string][]model.DailyRecord),
		fgis:  make(map[string]model.FearGreed),
	}
}

func (m *MemoryStore) UpsertDaily(_ context.Context, records []model.DailyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		key := strings.ToLower(r.Symbol)
		list := m.daily[key]
		i := sort.Search(len(list), func(i int) bool { return list[i].Date >= r.Date })
		if i < len(list) && list[i].Date == r.Date {
			r.ID, r.CreatedAt, r.Symbol = list[i].ID, list[i].CreatedAt, list[i].Symbol
			list[i] = r
			continue
		}
		m.nextID++
		r.ID = m.nextID
		r.CreatedAt = now
		list = append(list, model.DailyRecord{})
		copy(list[i+1:], list[i:])
		list[i] = r
		m.daily[key] = list
	}
	return nil
}

func (m *MemoryStore) ListDaily(_ context.Context, symbol, from, to string) ([]model.DailyRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.DailyRecord
	for _, r := range m.daily[strings.ToLower(symbol)] {
		if from != "" && r.Date < from {
			continue
		}
		if to != "" && r.Date > to {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *MemoryStore) SaveFearGreed(_ context.Context, fg *model.FearGreed) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if fg.CreatedAt.IsZero() {
		fg.CreatedAt = time.Now().UTC()
	}
	m.fgis[fg.Date] = *fg
	return nil
}

func (m *MemoryStore) ListFearGreed(_ context.Context, limit int) ([]model.FearGreed, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.FearGreed, 0, len(m.fgis))
	for _, fg := range m.fgis {
		out = append(out, fg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
