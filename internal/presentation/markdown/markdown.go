// Package markdown renders workshop data as markdown documents for the MCP
// and CLI surfaces.
package markdown

import (
	"fmt"
	"strings"

	"github.com/aretw0/bigpicture/pkg/domain"
	"github.com/aretw0/bigpicture/pkg/query"
)

// CharacterLimit caps a rendered document before Truncate cuts it.
const CharacterLimit = 25000

// Detail selects how much of each element a document shows.
type Detail string

const (
	DetailSummary Detail = "summary"
	DetailFull    Detail = "full"
)

// ParseDetail normalizes a detail level string, defaulting to summary.
func ParseDetail(s string) Detail {
	if Detail(s) == DetailFull {
		return DetailFull
	}
	return DetailSummary
}

// ElementLine renders an element as a single summary bullet.
func ElementLine(e *domain.Element) string {
	return fmt.Sprintf("- [%s] **%s** (pos: %d, id: `%s`)", e.Type, e.Name, e.Position, e.ID)
}

// ElementBlock renders an element with all its detail fields.
func ElementBlock(e *domain.Element) string {
	lines := []string{
		fmt.Sprintf("**[%s]** %s `%s` (%s)", strings.ToUpper(string(e.Type)), e.Name, e.ID, e.Type.Color()),
		fmt.Sprintf("  Position: %d", e.Position),
	}
	if e.Notes != "" {
		lines = append(lines, fmt.Sprintf("  Notes: %s", e.Notes))
	}
	if e.BoundedContextID != "" {
		lines = append(lines, fmt.Sprintf("  Context: %s", e.BoundedContextID))
	}
	if len(e.TriggeredBy) > 0 {
		lines = append(lines, fmt.Sprintf("  Triggered by: %s", strings.Join(e.TriggeredBy, ", ")))
	}
	if len(e.Triggers) > 0 {
		lines = append(lines, fmt.Sprintf("  Triggers: %s", strings.Join(e.Triggers, ", ")))
	}
	return strings.Join(lines, "\n")
}

// Pagination renders the page position plus navigation hints.
func Pagination(p query.Page) string {
	showing := p.TotalItems - (p.Page-1)*p.PageSize
	if showing > p.PageSize {
		showing = p.PageSize
	}
	if showing < 0 {
		showing = 0
	}

	lines := []string{
		fmt.Sprintf("**Page %d of %d** (showing %d of %d items)",
			p.Page, p.TotalPages, showing, p.TotalItems),
	}

	hints := []string{}
	if p.HasNext {
		hints = append(hints, fmt.Sprintf("Use `page=%d` for next page", p.Page+1))
	}
	if p.HasPrev {
		hints = append(hints, fmt.Sprintf("Use `page=%d` for previous page", p.Page-1))
	}
	if len(hints) > 0 {
		lines = append(lines, "💡 "+strings.Join(hints, " | "))
	}

	return strings.Join(lines, "\n")
}

// Truncate cuts content at CharacterLimit, appending a warning and an
// optional suggestion for how to narrow the query.
func Truncate(content, suggestion string) string {
	if len(content) <= CharacterLimit {
		return content
	}

	truncated := content[:CharacterLimit]
	message := fmt.Sprintf("\n\n⚠️ Response truncated (showing ~%d/%d characters)", len(truncated), len(content))
	if suggestion != "" {
		message += "\n💡 " + suggestion
	}
	return truncated + message
}
