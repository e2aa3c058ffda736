// Package flow traces cause -> effect chains through the trigger graph.
//
// Traversal is depth- and size-bounded and cycle-safe by construction: each
// start point owns a visited set threaded through its whole descent, so
// termination does not depend on the graph being acyclic.
package flow

import "github.com/aretw0/bigpicture/pkg/domain"

// Traversal bounds and defaults.
const (
	DefaultMaxDepth    = 5
	MaxDepthLimit      = 20
	DefaultMaxElements = 100
	MaxElementsLimit   = 500
)

// Options bounds a trace call. Zero values select the defaults.
type Options struct {
	// MaxDepth is the maximum number of edge-hops from a start element, clamped to 1..20.
	MaxDepth int
	// MaxElements budgets distinct nodes visited across the entire call,
	// shared by all roots in full mode. Clamped to 1..500.
	MaxElements int
}

// Normalize clamps the options into their valid ranges, filling defaults for
// zero values.
func (o Options) Normalize() Options {
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxDepth < 1 {
		o.MaxDepth = 1
	}
	if o.MaxDepth > MaxDepthLimit {
		o.MaxDepth = MaxDepthLimit
	}
	if o.MaxElements == 0 {
		o.MaxElements = DefaultMaxElements
	}
	if o.MaxElements < 1 {
		o.MaxElements = 1
	}
	if o.MaxElements > MaxElementsLimit {
		o.MaxElements = MaxElementsLimit
	}
	return o
}

// Step is one visited element in a trace tree.
type Step struct {
	Element  *domain.Element `json:"element"`
	Depth    int             `json:"depth"`
	Children []*Step         `json:"children,omitempty"`
	// Truncated marks that descent below this step was cut by the element budget.
	Truncated bool `json:"truncated,omitempty"`
}

// Result is the outcome of one trace call.
type Result struct {
	// Traces holds one tree per start element (a single one in directed mode).
	Traces []*Step `json:"traces"`
	// NoRoots is set in full mode when every element is triggered by something,
	// which usually indicates cycles or incomplete modeling.
	NoRoots bool `json:"no_roots,omitempty"`
	// Truncated reports that the element budget stopped the traversal early.
	Truncated bool `json:"truncated,omitempty"`
	// Visited counts the nodes consumed from the budget across the whole call.
	Visited int `json:"visited"`
}

// tracer owns the traversal state: the element budget shared across the whole
// call, while each start point gets its own fresh visited set.
type tracer struct {
	workshop  *domain.Workshop
	maxDepth  int
	budget    int
	visited   int
	truncated bool
}

// Trace traverses the trigger graph.
//
// With a startID it runs one depth-bounded traversal from that element,
// returning domain.ErrElementNotFound if it is absent. With an empty startID
// it finds all roots (elements with no incoming triggers) and traverses each
// in turn, sharing the element budget across all of them.
func Trace(w *domain.Workshop, startID string, opts Options) (*Result, error) {
	opts = opts.Normalize()
	tr := &tracer{
		workshop: w,
		maxDepth: opts.MaxDepth,
		budget:   opts.MaxElements,
	}
	res := &Result{Traces: []*Step{}}

	if startID != "" {
		if w.FindElement(startID) == nil {
			return nil, domain.ErrElementNotFound
		}
		if step := tr.descend(startID, 0, map[string]bool{}); step != nil {
			res.Traces = append(res.Traces, step)
		}
	} else {
		roots := []*domain.Element{}
		for _, e := range w.Elements {
			if len(e.TriggeredBy) == 0 {
				roots = append(roots, e)
			}
		}
		if len(roots) == 0 {
			res.NoRoots = true
			return res, nil
		}
		for _, root := range roots {
			if tr.budget <= 0 {
				tr.truncated = true
				break
			}
			// Fresh visited set per root: the same element may legitimately
			// appear again under a different start point.
			if step := tr.descend(root.ID, 0, map[string]bool{}); step != nil {
				res.Traces = append(res.Traces, step)
			}
		}
	}

	res.Truncated = tr.truncated
	res.Visited = tr.visited
	return res, nil
}

func (t *tracer) descend(id string, depth int, visited map[string]bool) *Step {
	// A node already seen anywhere in this start's tree is never re-entered,
	// even when reachable again over a different path.
	if depth >= t.maxDepth || visited[id] {
		return nil
	}
	if t.budget <= 0 {
		t.truncated = true
		return nil
	}

	visited[id] = true
	t.budget--
	t.visited++

	element := t.workshop.FindElement(id)
	if element == nil {
		// Dangling trigger edge; the budget slot is still consumed.
		return nil
	}

	step := &Step{Element: element, Depth: depth}
	for _, triggerID := range element.Triggers {
		if t.budget <= 0 {
			t.truncated = true
			step.Truncated = true
			break
		}
		if child := t.descend(triggerID, depth+1, visited); child != nil {
			step.Children = append(step.Children, child)
		}
	}
	return step
}
