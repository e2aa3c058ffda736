package workshop

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/bigpicture/pkg/domain"
)

// ExportFormatVersion identifies the export envelope layout, independent of
// the workshop schema version.
const ExportFormatVersion = "1.0"

// ExportInfo stamps an export with its provenance.
type ExportInfo struct {
	ExportedAt string `json:"exported_at"`
	Version    string `json:"version"`
	Tool       string `json:"tool"`
}

// reducedMetadata is the metadata shape of an export without full metadata:
// enough to re-import under a fresh identity, nothing session-specific.
type reducedMetadata struct {
	Name        string `json:"name"`
	Domain      string `json:"domain"`
	Description string `json:"description"`
}

type exportEnvelope struct {
	Metadata        any                      `json:"metadata"`
	Elements        []*domain.Element        `json:"elements"`
	BoundedContexts []*domain.BoundedContext `json:"bounded_contexts"`
	ExportInfo      ExportInfo               `json:"export_info"`
}

// Export serializes the workshop for sharing or backup. With includeMetadata
// false the metadata is reduced to name, domain and description.
func (s *Service) Export(ctx context.Context, workshopID string, includeMetadata bool) ([]byte, error) {
	w, err := s.store.Load(ctx, workshopID)
	if err != nil {
		return nil, err
	}

	envelope := exportEnvelope{
		Elements:        w.Elements,
		BoundedContexts: w.BoundedContexts,
		ExportInfo: ExportInfo{
			ExportedAt: domain.Timestamp(),
			Version:    ExportFormatVersion,
			Tool:       "bigpicture",
		},
	}
	if includeMetadata {
		envelope.Metadata = w.Metadata
	} else {
		envelope.Metadata = reducedMetadata{
			Name:        w.Metadata.Name,
			Domain:      w.Metadata.Domain,
			Description: w.Metadata.Description,
		}
	}

	return json.MarshalIndent(envelope, "", "  ")
}

// Import creates a new workshop from exported JSON. The imported workshop
// gets a fresh ID and timestamps; newName, when non-empty, replaces the
// exported name. Nothing is persisted when the payload does not parse or
// validate. Element and context data round-trip unchanged.
func (s *Service) Import(ctx context.Context, payload []byte, newName string) (*domain.Workshop, error) {
	w, err := domain.Decode(payload)
	if err != nil {
		return nil, &ValidationError{Field: "workshop_data", Reason: err.Error()}
	}

	now := domain.Timestamp()
	w.Metadata.ID = domain.NewID()
	w.Metadata.CreatedAt = now
	w.Metadata.UpdatedAt = now
	if newName != "" {
		w.Metadata.Name = newName
	}
	if w.Metadata.Name == "" {
		return nil, &ValidationError{Field: "workshop_data", Reason: "workshop name missing; pass new_name"}
	}

	if err := s.store.Save(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to import workshop: %w", err)
	}
	s.log.InfoContext(ctx, "workshop imported",
		"workshop_id", w.Metadata.ID, "name", w.Metadata.Name,
		"elements", len(w.Elements), "contexts", len(w.BoundedContexts))
	return w, nil
}
