package query

import (
	"sort"
	"strings"

	"github.com/aretw0/bigpicture/pkg/domain"
)

// Filter narrows an element listing. Zero values mean "no constraint".
type Filter struct {
	Type      domain.ElementType
	ContextID string
}

func (f Filter) matches(e *domain.Element) bool {
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.ContextID != "" && e.BoundedContextID != f.ContextID {
		return false
	}
	return true
}

// Search returns elements whose name or notes contain the query,
// case-insensitively, further constrained by the filter. Results keep the
// underlying collection order.
func Search(w *domain.Workshop, q string, f Filter) []*domain.Element {
	needle := strings.ToLower(q)
	matches := []*domain.Element{}
	for _, e := range w.Elements {
		if !f.matches(e) {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name), needle) ||
			strings.Contains(strings.ToLower(e.Notes), needle) {
			matches = append(matches, e)
		}
	}
	return matches
}

// Timeline returns the filtered elements sorted ascending by position, with
// creation time as the tiebreak for equal positions.
func Timeline(w *domain.Workshop, f Filter) []*domain.Element {
	elements := []*domain.Element{}
	for _, e := range w.Elements {
		if f.matches(e) {
			elements = append(elements, e)
		}
	}
	sort.SliceStable(elements, func(i, j int) bool {
		if elements[i].Position != elements[j].Position {
			return elements[i].Position < elements[j].Position
		}
		return elements[i].CreatedAt < elements[j].CreatedAt
	})
	return elements
}

// Overview describes one bounded context and its members.
type Overview struct {
	Context *domain.BoundedContext
	// Elements are the context members in workshop collection order.
	Elements []*domain.Element
	// TypeBreakdown counts members per element type, zero-filled across all types.
	TypeBreakdown map[domain.ElementType]int
}

// ContextOverviews builds an overview per bounded context. When contextID is
// non-empty only that context is included; an unknown ID yields an empty slice.
func ContextOverviews(w *domain.Workshop, contextID string) []Overview {
	overviews := []Overview{}
	for _, ctx := range w.BoundedContexts {
		if contextID != "" && ctx.ID != contextID {
			continue
		}

		member := make(map[string]bool, len(ctx.ElementIDs))
		for _, id := range ctx.ElementIDs {
			member[id] = true
		}

		breakdown := make(map[domain.ElementType]int, len(domain.ElementTypes))
		for _, t := range domain.ElementTypes {
			breakdown[t] = 0
		}

		elements := []*domain.Element{}
		for _, e := range w.Elements {
			if member[e.ID] {
				elements = append(elements, e)
				breakdown[e.Type]++
			}
		}

		overviews = append(overviews, Overview{
			Context:       ctx,
			Elements:      elements,
			TypeBreakdown: breakdown,
		})
	}
	return overviews
}
