package markdown

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/bigpicture/pkg/domain"
	"github.com/aretw0/bigpicture/pkg/flow"
	"github.com/aretw0/bigpicture/pkg/query"
	"github.com/aretw0/bigpicture/pkg/stats"
	"github.com/aretw0/bigpicture/pkg/workshop"
)

// WorkshopOverview renders the workshop header, statistics, context list and,
// at summary detail, a compact element listing.
func WorkshopOverview(w *domain.Workshop, detail Detail) string {
	lines := []string{
		fmt.Sprintf("# Workshop: %s", w.Metadata.Name),
		fmt.Sprintf("**ID**: `%s`", w.Metadata.ID),
		fmt.Sprintf("**Domain**: %s", orNotSpecified(w.Metadata.Domain)),
		fmt.Sprintf("**Created**: %s", w.Metadata.CreatedAt),
		fmt.Sprintf("**Updated**: %s", w.Metadata.UpdatedAt),
		"",
	}

	if w.Metadata.Description != "" {
		lines = append(lines, fmt.Sprintf("**Description**: %s", w.Metadata.Description), "")
	}
	if len(w.Metadata.Facilitators) > 0 {
		lines = append(lines, fmt.Sprintf("**Facilitators**: %s", strings.Join(w.Metadata.Facilitators, ", ")), "")
	}

	lines = append(lines,
		"## Statistics",
		fmt.Sprintf("- Total Elements: %d", len(w.Elements)),
		fmt.Sprintf("- Bounded Contexts: %d", len(w.BoundedContexts)),
		"",
	)

	typeCounts := map[domain.ElementType]int{}
	for _, e := range w.Elements {
		typeCounts[e.Type]++
	}
	if len(typeCounts) > 0 {
		lines = append(lines, "### Elements by Type")
		for _, t := range sortedTypes(typeCounts) {
			lines = append(lines, fmt.Sprintf("- %s: %d", t, typeCounts[t]))
		}
		lines = append(lines, "")
	}

	if len(w.BoundedContexts) > 0 {
		lines = append(lines, "## Bounded Contexts")
		for _, ctx := range w.BoundedContexts {
			lines = append(lines, fmt.Sprintf("- **%s** (`%s`): %d elements", ctx.Name, ctx.ID, len(ctx.ElementIDs)))
		}
		lines = append(lines, "")
	}

	if detail == DetailSummary && len(w.Elements) > 0 {
		lines = append(lines, "## Elements (Summary)")
		for _, e := range sortedByTypeAndPosition(w.Elements) {
			lines = append(lines, ElementLine(e))
		}
		lines = append(lines, "", "💡 Use `detail_level=full` to see all element details")
	}

	return Truncate(strings.Join(lines, "\n"), "Use specific queries to explore elements and contexts")
}

// SearchResults renders a search result page.
func SearchResults(q string, elements []*domain.Element, p query.Page, detail Detail) string {
	lines := []string{
		fmt.Sprintf("# Search Results: '%s'", q),
		fmt.Sprintf("Found %d matching element(s)", p.TotalItems),
		"",
		Pagination(p),
		"",
	}

	if len(elements) == 0 {
		lines = append(lines, "No matching elements found on this page.")
	}
	for _, e := range elements {
		if detail == DetailSummary {
			lines = append(lines, ElementLine(e))
		} else {
			lines = append(lines, ElementBlock(e), "")
		}
	}

	return strings.Join(lines, "\n")
}

// Timeline renders a page of elements in position order. At full detail the
// elements are grouped under per-position headings.
func Timeline(w *domain.Workshop, typeFilter domain.ElementType, contextName string, elements []*domain.Element, p query.Page, detail Detail) string {
	lines := []string{fmt.Sprintf("# Timeline: %s", w.Metadata.Name), ""}

	if typeFilter != "" {
		lines = append(lines, fmt.Sprintf("Filter: %s", typeFilter))
	}
	if contextName != "" {
		lines = append(lines, fmt.Sprintf("Context: %s", contextName))
	}
	lines = append(lines, "", Pagination(p), "")

	if len(elements) == 0 {
		lines = append(lines, "No elements found on this page.")
	}
	havePosition := false
	currentPosition := 0
	for _, e := range elements {
		if detail == DetailFull {
			if !havePosition || e.Position != currentPosition {
				havePosition = true
				currentPosition = e.Position
				lines = append(lines, fmt.Sprintf("\n## Position %d", currentPosition))
			}
			lines = append(lines, ElementBlock(e), "")
		} else {
			lines = append(lines, ElementLine(e))
		}
	}

	return strings.Join(lines, "\n")
}

// ContextOverviews renders the selected bounded contexts with their member
// elements and per-type breakdowns.
func ContextOverviews(w *domain.Workshop, overviews []workshop.ContextOverview, detail Detail) string {
	lines := []string{fmt.Sprintf("# Bounded Contexts: %s", w.Metadata.Name), ""}

	if len(overviews) == 0 {
		lines = append(lines, "No bounded contexts defined.")
		return strings.Join(lines, "\n")
	}

	for _, ov := range overviews {
		ctx := ov.Context
		lines = append(lines, fmt.Sprintf("## %s", ctx.Name), fmt.Sprintf("**ID**: `%s`", ctx.ID))
		if ctx.Description != "" {
			lines = append(lines, fmt.Sprintf("**Description**: %s", ctx.Description))
		}
		if ctx.Color != "" {
			lines = append(lines, fmt.Sprintf("**Color**: %s", ctx.Color))
		}
		lines = append(lines, fmt.Sprintf("**Total Elements**: %d", ov.TotalElements))

		if ov.TotalElements > 0 {
			lines = append(lines, "\n### Element Breakdown")
			for _, t := range sortedTypes(ov.TypeBreakdown) {
				if ov.TypeBreakdown[t] > 0 {
					lines = append(lines, fmt.Sprintf("- %s: %d", t, ov.TypeBreakdown[t]))
				}
			}

			lines = append(lines, "", "### Elements", Pagination(ov.Page), "")
			for _, e := range sortedByTypeAndPosition(ov.Elements) {
				if detail == DetailSummary {
					lines = append(lines, ElementLine(e))
				} else {
					lines = append(lines, ElementBlock(e), "")
				}
			}
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// Statistics renders the full statistics report.
func Statistics(w *domain.Workshop, s stats.Statistics) string {
	lines := []string{
		fmt.Sprintf("# Workshop Statistics: %s", w.Metadata.Name),
		"",
		"## Overview",
		fmt.Sprintf("- **Domain**: %s", orNotSpecified(w.Metadata.Domain)),
		fmt.Sprintf("- **Created**: %s", w.Metadata.CreatedAt),
		fmt.Sprintf("- **Last Updated**: %s", w.Metadata.UpdatedAt),
		fmt.Sprintf("- **Total Elements**: %d", s.Totals.Elements),
		fmt.Sprintf("- **Bounded Contexts**: %d", s.Totals.BoundedContexts),
		"",
		"## Elements by Type",
	}

	for _, t := range sortedTypes(s.ByType) {
		if s.ByType[t] > 0 {
			lines = append(lines, fmt.Sprintf("- **%s**: %d", t, s.ByType[t]))
		}
	}

	if len(s.ByContext) > 0 {
		lines = append(lines, "", "## Elements by Bounded Context")
		names := make([]string, 0, len(s.ByContext))
		for name := range s.ByContext {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			lines = append(lines, fmt.Sprintf("- **%s**: %d", name, s.ByContext[name]))
		}
	}

	lines = append(lines,
		"",
		"## Relationships",
		fmt.Sprintf("- Elements with outgoing triggers: %d", s.Relationships.ElementsWithTriggers),
		fmt.Sprintf("- Elements with incoming triggers: %d", s.Relationships.ElementsWithTriggeredBy),
		fmt.Sprintf("- Total trigger links: %d", s.Relationships.TotalTriggerLinks),
		"",
		"## Context Coverage",
		fmt.Sprintf("- Elements assigned to contexts: %d", s.Coverage.ElementsInContexts),
		fmt.Sprintf("- Elements without context: %d", s.Coverage.ElementsWithoutContext),
	)

	if s.Coverage.ElementsWithoutContext > 0 {
		lines = append(lines, fmt.Sprintf("- **Coverage**: %.1f%% of elements are contextualized", s.Coverage.PercentContextualized))
	}

	return strings.Join(lines, "\n")
}

// Flow renders a trace result as an indented cause -> effect tree. start is
// nil in full (all-roots) mode.
func Flow(w *domain.Workshop, start *domain.Element, res *flow.Result, maxElements int) string {
	lines := []string{fmt.Sprintf("# Event Flow Visualization: %s", w.Metadata.Name), ""}

	if start != nil {
		lines = append(lines, fmt.Sprintf("## Flow from: %s", start.Name), "")
		for _, trace := range res.Traces {
			lines = append(lines, flowTree(trace)...)
		}
	} else if res.NoRoots {
		lines = append(lines,
			"No root elements found (all elements are triggered by something).",
			"This might indicate circular dependencies or incomplete modeling.",
		)
	} else {
		lines = append(lines, fmt.Sprintf("Found %d root element(s)", len(res.Traces)), "")
		for _, trace := range res.Traces {
			lines = append(lines, fmt.Sprintf("## Flow from: %s", trace.Element.Name))
			lines = append(lines, flowTree(trace)...)
			lines = append(lines, "")
		}
	}

	if res.Truncated {
		lines = append(lines, "", fmt.Sprintf(
			"⚠️ Display limit reached (%d elements). Use start_element_id to focus on specific flows.",
			maxElements))
	}

	return strings.Join(lines, "\n")
}

func flowTree(step *flow.Step) []string {
	prefix := strings.Repeat("  ", step.Depth)
	e := step.Element
	lines := []string{fmt.Sprintf("%s→ [%s] **%s** `%s`", prefix, e.Type, e.Name, e.ID)}

	// Long notes would drown the tree; only short ones render inline.
	if e.Notes != "" && len(e.Notes) < 100 {
		lines = append(lines, fmt.Sprintf("%s  _%s_", prefix, e.Notes))
	}

	for _, child := range step.Children {
		lines = append(lines, flowTree(child)...)
	}
	if step.Truncated {
		lines = append(lines, fmt.Sprintf("%s  ... (max elements limit reached)", prefix))
	}
	return lines
}

func sortedTypes[V any](m map[domain.ElementType]V) []domain.ElementType {
	types := make([]domain.ElementType, 0, len(m))
	for t := range m {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func sortedByTypeAndPosition(elements []*domain.Element) []*domain.Element {
	sorted := append([]*domain.Element{}, elements...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Type != sorted[j].Type {
			return sorted[i].Type < sorted[j].Type
		}
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
