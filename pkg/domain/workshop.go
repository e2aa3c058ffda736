package domain

import (
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the current on-disk schema version.
// Older snapshots are migrated on decode (see Decode).
const SchemaVersion = "2.0"

// Metadata describes a workshop session.
type Metadata struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Domain        string   `json:"domain"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
	Facilitators  []string `json:"facilitators"`
	SchemaVersion string   `json:"schema_version"`
}

// BoundedContext is a named DDD grouping of elements.
//
// ElementIDs mirrors the set of elements whose BoundedContextID points here.
// The mirror is maintained at each mutation site, not derived on read.
type BoundedContext struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ElementIDs  []string `json:"element_ids"`
	Color       string   `json:"color,omitempty"`
}

// Workshop is the aggregate root: one snapshot is the unit of load/mutate/save.
type Workshop struct {
	Metadata        Metadata         `json:"metadata"`
	Elements        []*Element       `json:"elements"`
	BoundedContexts []*BoundedContext `json:"bounded_contexts"`
}

// NewWorkshop creates an empty workshop with a fresh ID and timestamps.
func NewWorkshop(name, description, domainName string, facilitators []string) *Workshop {
	now := Timestamp()
	if facilitators == nil {
		facilitators = []string{}
	}
	return &Workshop{
		Metadata: Metadata{
			ID:            NewID(),
			Name:          name,
			Description:   description,
			Domain:        domainName,
			CreatedAt:     now,
			UpdatedAt:     now,
			Facilitators:  facilitators,
			SchemaVersion: SchemaVersion,
		},
		Elements:        []*Element{},
		BoundedContexts: []*BoundedContext{},
	}
}

// FindElement returns the element with the given ID, or nil.
func (w *Workshop) FindElement(id string) *Element {
	for _, e := range w.Elements {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// FindContext returns the bounded context with the given ID, or nil.
func (w *Workshop) FindContext(id string) *BoundedContext {
	for _, c := range w.BoundedContexts {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// NewID generates a unique identifier.
func NewID() string {
	return uuid.NewString()
}

// timestampLayout is RFC3339 with fixed-width microseconds, so timestamp
// strings order lexically the same way they order chronologically.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// Timestamp returns the current UTC time as a sortable RFC3339 string.
func Timestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}
