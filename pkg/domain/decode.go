package domain

import (
	"encoding/json"
	"fmt"
)

// legacyElement captures the v1 wire shape, which carried a separate
// description field alongside notes.
type legacyElement struct {
	Element
	Description string `json:"description,omitempty"`
}

type snapshot struct {
	Metadata        Metadata          `json:"metadata"`
	Elements        []*legacyElement  `json:"elements"`
	BoundedContexts []*BoundedContext `json:"bounded_contexts"`
}

// Decode parses a workshop snapshot from JSON, migrating legacy (pre-2.0)
// shapes to the current schema and validating the entity shapes.
//
// The v1 -> v2 migration folds each element's description into notes
// (description first, blank line between when both are present) and stamps
// SchemaVersion on the metadata.
func Decode(data []byte) (*Workshop, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid workshop data: %w", err)
	}

	migrate := snap.Metadata.SchemaVersion != SchemaVersion

	w := &Workshop{
		Metadata:        snap.Metadata,
		Elements:        make([]*Element, 0, len(snap.Elements)),
		BoundedContexts: snap.BoundedContexts,
	}
	w.Metadata.SchemaVersion = SchemaVersion
	if w.Metadata.Facilitators == nil {
		w.Metadata.Facilitators = []string{}
	}
	if w.BoundedContexts == nil {
		w.BoundedContexts = []*BoundedContext{}
	}

	for i, le := range snap.Elements {
		e := le.Element
		if migrate && le.Description != "" {
			if e.Notes != "" {
				e.Notes = le.Description + "\n\n" + e.Notes
			} else {
				e.Notes = le.Description
			}
		}
		if e.ID == "" {
			return nil, fmt.Errorf("invalid workshop data: element %d has no id", i)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("invalid workshop data: element %q has no name", e.ID)
		}
		if !e.Type.Valid() {
			return nil, fmt.Errorf("invalid workshop data: element %q has unknown type %q", e.ID, e.Type)
		}
		if e.Triggers == nil {
			e.Triggers = []string{}
		}
		if e.TriggeredBy == nil {
			e.TriggeredBy = []string{}
		}
		elem := e
		w.Elements = append(w.Elements, &elem)
	}

	for i, ctx := range w.BoundedContexts {
		if ctx.ID == "" {
			return nil, fmt.Errorf("invalid workshop data: bounded context %d has no id", i)
		}
		if ctx.Name == "" {
			return nil, fmt.Errorf("invalid workshop data: bounded context %q has no name", ctx.ID)
		}
		if ctx.ElementIDs == nil {
			ctx.ElementIDs = []string{}
		}
	}

	return w, nil
}

// Encode serializes the workshop to indented JSON.
func Encode(w *Workshop) ([]byte, error) {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal workshop: %w", err)
	}
	return data, nil
}
