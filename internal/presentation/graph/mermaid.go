// Package graph renders a workshop's trigger graph as Mermaid flowchart syntax.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/bigpicture/pkg/domain"
)

// Sticky note colors mapped to Mermaid fills, black text for contrast on
// light and dark themes alike.
var classDefs = map[domain.ElementType]string{
	domain.TypeEvent:          "fill:#ffb74d,stroke:#e65100,color:#000",
	domain.TypeCommand:        "fill:#64b5f6,stroke:#0d47a1,color:#000",
	domain.TypeActor:          "fill:#fff176,stroke:#f57f17,color:#000",
	domain.TypeAggregate:      "fill:#fff9c4,stroke:#f9a825,color:#000",
	domain.TypePolicy:         "fill:#ce93d8,stroke:#4a148c,color:#000",
	domain.TypeReadModel:      "fill:#81c784,stroke:#1b5e20,color:#000",
	domain.TypeExternalSystem: "fill:#f48fb1,stroke:#880e4f,color:#000",
	domain.TypeHotspot:        "fill:#e57373,stroke:#b71c1c,color:#000",
}

// GenerateMermaid produces a Mermaid flowchart of the trigger graph.
// It applies semantic shapes per element type:
// - Actor: ((Circle))
// - External system: [[Subroutine]]
// - Command: [/Parallelogram/]
// - Hotspot: {Diamond}
// - Default: [Rectangle]
// Edges follow each element's outgoing triggers; edges to missing elements
// are skipped.
func GenerateMermaid(w *domain.Workshop) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, e := range w.Elements {
		safeID := sanitizeMermaidID(e.ID)

		opener, closer := "[", "]"
		switch e.Type {
		case domain.TypeActor:
			opener, closer = "((", "))"
		case domain.TypeExternalSystem:
			opener, closer = "[[", "]]"
		case domain.TypeCommand:
			opener, closer = "[/", "/]"
		case domain.TypeHotspot:
			opener, closer = "{", "}"
		}

		label := strings.ReplaceAll(e.Name, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		for _, targetID := range e.Triggers {
			if w.FindElement(targetID) == nil {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, sanitizeMermaidID(targetID)))
		}
	}

	sb.WriteString("\n    %% Element type styles\n")
	used := map[domain.ElementType]bool{}
	for _, e := range w.Elements {
		used[e.Type] = true
	}
	for _, t := range domain.ElementTypes {
		if !used[t] {
			continue
		}
		sb.WriteString(fmt.Sprintf("    classDef %s %s;\n", t, classDefs[t]))
	}
	for _, e := range w.Elements {
		sb.WriteString(fmt.Sprintf("    class %s %s;\n", sanitizeMermaidID(e.ID), e.Type))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
