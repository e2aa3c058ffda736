package domain

// ContextNone is the sentinel value that clears an element's bounded context
// assignment when passed as the new BoundedContextID in an update.
const ContextNone = "null"

// NewElement describes an element to be added to a workshop.
type NewElement struct {
	Type        ElementType
	Name        string
	Position    *int
	Notes       string
	CreatedBy   string
	Triggers    []string
	TriggeredBy []string
	// BoundedContextID assigns the element to a context. The reference is not
	// validated: a dangling ID is stored as-is, but only an existing context
	// gets its ElementIDs mirror updated.
	BoundedContextID string
}

// AddElement creates a new element and appends it to the workshop.
//
// When Position is nil it is auto-assigned as the count of existing elements of
// the same type, so each type occupies its own 0-indexed lane on the timeline.
func (w *Workshop) AddElement(in NewElement) *Element {
	position := 0
	if in.Position != nil {
		position = *in.Position
	} else {
		for _, e := range w.Elements {
			if e.Type == in.Type {
				position++
			}
		}
	}

	triggers := in.Triggers
	if triggers == nil {
		triggers = []string{}
	}
	triggeredBy := in.TriggeredBy
	if triggeredBy == nil {
		triggeredBy = []string{}
	}

	now := Timestamp()
	element := &Element{
		ID:               NewID(),
		Type:             in.Type,
		Name:             in.Name,
		Position:         position,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedBy:        in.CreatedBy,
		Triggers:         triggers,
		TriggeredBy:      triggeredBy,
		BoundedContextID: in.BoundedContextID,
	}
	w.Elements = append(w.Elements, element)

	if in.BoundedContextID != "" {
		if ctx := w.FindContext(in.BoundedContextID); ctx != nil {
			ctx.addElementID(element.ID)
		}
	}

	return element
}

// ElementPatch carries the fields of a partial element update.
// Nil fields are left untouched.
type ElementPatch struct {
	Name     *string
	Position *int
	Notes    *string
	// Triggers and TriggeredBy replace the whole list when non-nil. Peers are
	// not reconciled: editing one side of the relationship leaves the other
	// side's mirror untouched.
	Triggers    *[]string
	TriggeredBy *[]string
	// BoundedContextID moves the element between contexts; the ContextNone
	// sentinel clears the assignment.
	BoundedContextID *string
}

// UpdateElement applies the patch to the element with the given ID and returns
// the names of the fields that changed. Returns ErrElementNotFound if absent.
func (w *Workshop) UpdateElement(id string, patch ElementPatch) ([]string, error) {
	element := w.FindElement(id)
	if element == nil {
		return nil, ErrElementNotFound
	}

	updated := []string{}
	if patch.Name != nil {
		element.Name = *patch.Name
		updated = append(updated, "name")
	}
	if patch.Position != nil {
		element.Position = *patch.Position
		updated = append(updated, "position")
	}
	if patch.Notes != nil {
		element.Notes = *patch.Notes
		updated = append(updated, "notes")
	}
	if patch.Triggers != nil {
		element.Triggers = append([]string{}, (*patch.Triggers)...)
		updated = append(updated, "triggers")
	}
	if patch.TriggeredBy != nil {
		element.TriggeredBy = append([]string{}, (*patch.TriggeredBy)...)
		updated = append(updated, "triggered_by")
	}

	if patch.BoundedContextID != nil {
		oldContext := element.BoundedContextID
		newContext := *patch.BoundedContextID
		if newContext == ContextNone {
			newContext = ""
		}
		element.BoundedContextID = newContext
		updated = append(updated, "bounded_context_id")

		// Keep both sides of the element<->context mirror in sync.
		for _, ctx := range w.BoundedContexts {
			if ctx.ID == oldContext {
				ctx.removeElementID(element.ID)
			}
			if ctx.ID == newContext {
				ctx.addElementID(element.ID)
			}
		}
	}

	element.UpdatedAt = Timestamp()
	return updated, nil
}

// DeleteElement removes the element and strips its ID from every other
// element's trigger lists and from every context's ElementIDs. This is the only
// integrity-repair pass the model performs.
func (w *Workshop) DeleteElement(id string) (*Element, error) {
	element := w.FindElement(id)
	if element == nil {
		return nil, ErrElementNotFound
	}

	elements := w.Elements[:0]
	for _, e := range w.Elements {
		if e.ID != id {
			elements = append(elements, e)
		}
	}
	w.Elements = elements

	for _, e := range w.Elements {
		e.Triggers = removeID(e.Triggers, id)
		e.TriggeredBy = removeID(e.TriggeredBy, id)
	}
	for _, ctx := range w.BoundedContexts {
		ctx.ElementIDs = removeID(ctx.ElementIDs, id)
	}

	return element, nil
}

// AddBoundedContext creates a new bounded context. Contexts are never updated
// or deleted once created.
func (w *Workshop) AddBoundedContext(name, description, color string) *BoundedContext {
	ctx := &BoundedContext{
		ID:          NewID(),
		Name:        name,
		Description: description,
		ElementIDs:  []string{},
		Color:       color,
	}
	w.BoundedContexts = append(w.BoundedContexts, ctx)
	return ctx
}

// AssignToContext assigns the given elements to a bounded context.
//
// It fails with ErrContextNotFound only when the context itself is missing.
// Individual missing elements are reported in notFound and do not fail the
// call; the valid ones are still assigned.
func (w *Workshop) AssignToContext(contextID string, elementIDs []string) (assigned, notFound []string, err error) {
	ctx := w.FindContext(contextID)
	if ctx == nil {
		return nil, nil, ErrContextNotFound
	}

	assigned = []string{}
	notFound = []string{}
	for _, id := range elementIDs {
		element := w.FindElement(id)
		if element == nil {
			notFound = append(notFound, id)
			continue
		}
		element.BoundedContextID = contextID
		ctx.addElementID(id)
		assigned = append(assigned, id)
	}
	return assigned, notFound, nil
}

func (c *BoundedContext) addElementID(id string) {
	for _, existing := range c.ElementIDs {
		if existing == id {
			return
		}
	}
	c.ElementIDs = append(c.ElementIDs, id)
}

func (c *BoundedContext) removeElementID(id string) {
	c.ElementIDs = removeID(c.ElementIDs, id)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
