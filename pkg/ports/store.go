package ports

import (
	"context"

	"github.com/aretw0/bigpicture/pkg/domain"
)

// Summary is the listing view of a stored workshop.
type Summary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Domain       string `json:"domain"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	ElementCount int    `json:"element_count"`
	ContextCount int    `json:"context_count"`
}

// WorkshopStore persists whole workshop snapshots.
//
// The snapshot is the unit of persistence: every mutating operation loads a
// fresh snapshot, mutates it in memory, and saves it back exactly once.
// Concurrent writers to the same workshop are last-writer-wins; the store
// provides no locking or version detection.
type WorkshopStore interface {
	// Save persists the snapshot, stamping its UpdatedAt before writing.
	Save(ctx context.Context, w *domain.Workshop) error

	// Load retrieves a snapshot by workshop ID, migrating legacy schema
	// shapes. Returns domain.ErrWorkshopNotFound if the ID does not exist.
	Load(ctx context.Context, id string) (*domain.Workshop, error)

	// Delete removes a stored snapshot. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns summaries of all stored workshops, most recently updated first.
	List(ctx context.Context) ([]Summary, error)
}
