// Package stats derives counts and coverage metrics from a workshop snapshot.
// Computation is pure: no side effects, no mutation of the snapshot.
package stats

import "github.com/aretw0/bigpicture/pkg/domain"

// Totals holds the headline counts.
type Totals struct {
	Elements        int `json:"elements"`
	BoundedContexts int `json:"bounded_contexts"`
}

// Relationships summarizes the trigger graph.
type Relationships struct {
	ElementsWithTriggers    int `json:"elements_with_triggers"`
	ElementsWithTriggeredBy int `json:"elements_with_triggered_by"`
	TotalTriggerLinks       int `json:"total_trigger_links"`
}

// Coverage summarizes bounded context assignment.
type Coverage struct {
	ElementsInContexts     int     `json:"elements_in_contexts"`
	ElementsWithoutContext int     `json:"elements_without_context"`
	PercentContextualized  float64 `json:"percent_contextualized"`
}

// Statistics is the full snapshot report.
type Statistics struct {
	Totals Totals `json:"totals"`
	// ByType always contains all eight element types, zero-filled.
	ByType map[domain.ElementType]int `json:"by_type"`
	// ByContext is keyed by context name, so contexts sharing a name merge
	// their counts under one key. Known display limitation, kept as-is.
	ByContext     map[string]int `json:"by_context"`
	Relationships Relationships  `json:"relationships"`
	Coverage      Coverage       `json:"coverage"`
}

// Compute builds the statistics for a workshop snapshot.
func Compute(w *domain.Workshop) Statistics {
	s := Statistics{
		Totals: Totals{
			Elements:        len(w.Elements),
			BoundedContexts: len(w.BoundedContexts),
		},
		ByType:    make(map[domain.ElementType]int, len(domain.ElementTypes)),
		ByContext: make(map[string]int, len(w.BoundedContexts)),
	}

	for _, t := range domain.ElementTypes {
		s.ByType[t] = 0
	}
	for _, e := range w.Elements {
		s.ByType[e.Type]++
	}

	for _, ctx := range w.BoundedContexts {
		s.ByContext[ctx.Name] += len(ctx.ElementIDs)
	}

	for _, e := range w.Elements {
		if len(e.Triggers) > 0 {
			s.Relationships.ElementsWithTriggers++
			s.Relationships.TotalTriggerLinks += len(e.Triggers)
		}
		if len(e.TriggeredBy) > 0 {
			s.Relationships.ElementsWithTriggeredBy++
		}
		if e.BoundedContextID != "" {
			s.Coverage.ElementsInContexts++
		} else {
			s.Coverage.ElementsWithoutContext++
		}
	}

	if len(w.Elements) > 0 {
		s.Coverage.PercentContextualized = float64(s.Coverage.ElementsInContexts) / float64(len(w.Elements)) * 100
	}

	return s
}
