package domain

// ElementType identifies the kind of sticky note an element represents.
type ElementType string

// The eight core Event Storming element types.
const (
	TypeEvent          ElementType = "event"
	TypeCommand        ElementType = "command"
	TypeActor          ElementType = "actor"
	TypeAggregate      ElementType = "aggregate"
	TypePolicy         ElementType = "policy"
	TypeReadModel      ElementType = "read_model"
	TypeExternalSystem ElementType = "external_system"
	TypeHotspot        ElementType = "hotspot"
)

// ElementTypes lists all element types in canonical order.
// Statistics and breakdowns iterate this so every type is present, zero-filled.
var ElementTypes = []ElementType{
	TypeEvent,
	TypeCommand,
	TypeActor,
	TypeAggregate,
	TypePolicy,
	TypeReadModel,
	TypeExternalSystem,
	TypeHotspot,
}

// Valid reports whether t is one of the eight known element types.
func (t ElementType) Valid() bool {
	for _, known := range ElementTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Color returns the traditional Event Storming sticky note color for the type.
func (t ElementType) Color() string {
	if c, ok := elementColors[t]; ok {
		return c
	}
	return "gray"
}

// Traditional Event Storming color scheme.
var elementColors = map[ElementType]string{
	TypeEvent:          "orange",
	TypeCommand:        "blue",
	TypeActor:          "yellow",
	TypeAggregate:      "pale_yellow",
	TypePolicy:         "lilac",
	TypeReadModel:      "green",
	TypeExternalSystem: "pink",
	TypeHotspot:        "red",
}

// Element is a single typed node in the workshop's domain graph.
//
// Triggers and TriggeredBy are denormalized: each holds element IDs and the two
// directions are maintained independently. Deleting an element is the only
// operation that repairs references across the whole graph.
type Element struct {
	ID       string      `json:"id"`
	Type     ElementType `json:"type"`
	Name     string      `json:"name"`
	Position int         `json:"position"`
	Notes    string      `json:"notes"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	CreatedBy string `json:"created_by"`

	// Triggers holds IDs of elements this element causes (outgoing edges).
	Triggers []string `json:"triggers"`
	// TriggeredBy holds IDs of elements that cause this element (incoming edges).
	TriggeredBy []string `json:"triggered_by"`

	// BoundedContextID is a weak reference to a BoundedContext; it is not
	// validated on assignment and may dangle.
	BoundedContextID string `json:"bounded_context_id,omitempty"`
}
