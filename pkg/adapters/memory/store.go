// Package memory implements ports.WorkshopStore in process memory.
// Useful for tests and ephemeral sessions.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/bigpicture/pkg/domain"
	"github.com/aretw0/bigpicture/pkg/ports"
)

// Store implements ports.WorkshopStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Save persists the snapshot in memory. Snapshots are stored encoded so the
// caller cannot mutate stored state through retained pointers, matching the
// isolation of the serializing stores.
func (s *Store) Save(ctx context.Context, w *domain.Workshop) error {
	w.Metadata.UpdatedAt = domain.Timestamp()

	data, err := domain.Encode(w)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[w.Metadata.ID] = data
	return nil
}

// Load retrieves a snapshot copy from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Workshop, error) {
	s.mu.RLock()
	data, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrWorkshopNotFound
	}
	return domain.Decode(data)
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns summaries, most recently updated first.
func (s *Store) List(ctx context.Context) ([]ports.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]ports.Summary, 0, len(s.data))
	for _, data := range s.data {
		w, err := domain.Decode(data)
		if err != nil {
			continue
		}
		summaries = append(summaries, ports.Summary{
			ID:           w.Metadata.ID,
			Name:         w.Metadata.Name,
			Domain:       w.Metadata.Domain,
			CreatedAt:    w.Metadata.CreatedAt,
			UpdatedAt:    w.Metadata.UpdatedAt,
			ElementCount: len(w.Elements),
			ContextCount: len(w.BoundedContexts),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt > summaries[j].UpdatedAt
	})
	return summaries, nil
}
