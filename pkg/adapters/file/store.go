// Package file implements ports.WorkshopStore on the local filesystem,
// storing each workshop as one JSON snapshot file.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/aretw0/bigpicture/pkg/domain"
	"github.com/aretw0/bigpicture/pkg/ports"
)

// Store implements ports.WorkshopStore using the local filesystem.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ~/.bigpicture/workshops.
func New(basePath string) *Store {
	if basePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		basePath = filepath.Join(home, ".bigpicture", "workshops")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(id string) string {
	return filepath.Join(s.BasePath, id+".json")
}

// Save persists the workshop snapshot to a JSON file atomically.
// It stamps UpdatedAt, writes to a temporary file, fsyncs, and renames it
// into place so a crash never leaves a partial snapshot behind.
func (s *Store) Save(ctx context.Context, w *domain.Workshop) error {
	if w.Metadata.ID == "" {
		return fmt.Errorf("workshop ID cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure workshop directory: %w", err)
	}

	w.Metadata.UpdatedAt = domain.Timestamp()

	data, err := domain.Encode(w)
	if err != nil {
		return err
	}

	destPath := s.path(w.Metadata.ID)

	// Temp file in the same directory: rename is only atomic within one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+w.Metadata.ID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows os.Rename fails when the destination exists; remove it first.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing snapshot for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}

	return nil
}

// Load retrieves a workshop snapshot, migrating legacy schema shapes.
func (s *Store) Load(ctx context.Context, id string) (*domain.Workshop, error) {
	if id == "" {
		return nil, fmt.Errorf("workshop ID cannot be empty")
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to read workshop file: %w", err)
	}

	return domain.Decode(data)
}

// Delete removes the workshop snapshot file.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("workshop ID cannot be empty")
	}

	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete workshop file: %w", err)
	}
	return nil
}

// List returns summaries of all stored workshops, most recently updated first.
// Unreadable or malformed files are skipped rather than failing the listing.
func (s *Store) List(ctx context.Context) ([]ports.Summary, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []ports.Summary{}, nil
		}
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}

	summaries := []ports.Summary{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.BasePath, entry.Name()))
		if err != nil {
			continue
		}
		w, err := domain.Decode(data)
		if err != nil {
			continue
		}
		summaries = append(summaries, summarize(w))
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt > summaries[j].UpdatedAt
	})
	return summaries, nil
}

func summarize(w *domain.Workshop) ports.Summary {
	return ports.Summary{
		ID:           w.Metadata.ID,
		Name:         w.Metadata.Name,
		Domain:       w.Metadata.Domain,
		CreatedAt:    w.Metadata.CreatedAt,
		UpdatedAt:    w.Metadata.UpdatedAt,
		ElementCount: len(w.Elements),
		ContextCount: len(w.BoundedContexts),
	}
}
