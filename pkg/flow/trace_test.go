package flow

import (
	"testing"

	"github.com/aretw0/bigpicture/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain builds a -> b -> c ... keeping both edge directions consistent.
func link(from, to *domain.Element) {
	from.Triggers = append(from.Triggers, to.ID)
	to.TriggeredBy = append(to.TriggeredBy, from.ID)
}

func TestTrace_CycleTerminates(t *testing.T) {
	w := domain.NewWorkshop("Cycle", "", "", nil)
	a := w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "A"})
	b := w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "B"})
	link(a, b)
	link(b, a)

	res, err := Trace(w, a.ID, Options{MaxDepth: 5, MaxElements: 100})
	require.NoError(t, err)

	// A -> B, then B's edge back to A hits the visited set.
	assert.Equal(t, 2, res.Visited)
	assert.False(t, res.Truncated)
	require.Len(t, res.Traces, 1)
	root := res.Traces[0]
	assert.Equal(t, "A", root.Element.Name)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "B", root.Children[0].Element.Name)
	assert.Empty(t, root.Children[0].Children)
}

func TestTrace_DepthBound(t *testing.T) {
	w := domain.NewWorkshop("Deep", "", "", nil)
	elems := make([]*domain.Element, 6)
	for i := range elems {
		elems[i] = w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: string(rune('A' + i))})
		if i > 0 {
			link(elems[i-1], elems[i])
		}
	}

	res, err := Trace(w, elems[0].ID, Options{MaxDepth: 3, MaxElements: 100})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Visited, "depth 0..2 visited, descent stops at maxDepth hops")

	step := res.Traces[0]
	depth := 0
	for len(step.Children) > 0 {
		step = step.Children[0]
		depth++
	}
	assert.Equal(t, 2, depth)
}

func TestTrace_ElementBudget(t *testing.T) {
	w := domain.NewWorkshop("Wide", "", "", nil)
	root := w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "Root"})
	for i := 0; i < 10; i++ {
		child := w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "Child"})
		link(root, child)
	}

	res, err := Trace(w, root.ID, Options{MaxDepth: 5, MaxElements: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Visited)
	assert.True(t, res.Truncated)
	assert.True(t, res.Traces[0].Truncated, "cut happens under the root")
	assert.Len(t, res.Traces[0].Children, 3)
}

func TestTrace_StartNotFound(t *testing.T) {
	w := domain.NewWorkshop("Empty", "", "", nil)
	_, err := Trace(w, "missing", Options{})
	assert.ErrorIs(t, err, domain.ErrElementNotFound)
}

func TestTrace_FullMode(t *testing.T) {
	w := domain.NewWorkshop("Roots", "", "", nil)
	r1 := w.AddElement(domain.NewElement{Type: domain.TypeCommand, Name: "R1"})
	r2 := w.AddElement(domain.NewElement{Type: domain.TypeCommand, Name: "R2"})
	shared := w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "Shared"})
	link(r1, shared)
	link(r2, shared)

	res, err := Trace(w, "", Options{})
	require.NoError(t, err)
	require.Len(t, res.Traces, 2)
	// Each root gets its own visited set, so the shared element shows up twice.
	assert.Equal(t, "Shared", res.Traces[0].Children[0].Element.Name)
	assert.Equal(t, "Shared", res.Traces[1].Children[0].Element.Name)
	assert.Equal(t, 4, res.Visited)
}

func TestTrace_FullMode_NoRoots(t *testing.T) {
	w := domain.NewWorkshop("AllCyclic", "", "", nil)
	a := w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "A"})
	b := w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "B"})
	link(a, b)
	link(b, a)

	res, err := Trace(w, "", Options{})
	require.NoError(t, err)
	assert.True(t, res.NoRoots)
	assert.Empty(t, res.Traces)
}

func TestTrace_BudgetSharedAcrossRoots(t *testing.T) {
	w := domain.NewWorkshop("Budget", "", "", nil)
	for i := 0; i < 5; i++ {
		w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "Root"})
	}

	res, err := Trace(w, "", Options{MaxElements: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Visited)
	assert.True(t, res.Truncated)
	assert.Len(t, res.Traces, 3, "remaining roots are skipped once the shared budget is spent")
}

func TestTrace_DanglingTriggerIgnored(t *testing.T) {
	w := domain.NewWorkshop("Dangling", "", "", nil)
	a := w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "A"})
	a.Triggers = append(a.Triggers, "no-such-element")

	res, err := Trace(w, a.ID, Options{})
	require.NoError(t, err)
	require.Len(t, res.Traces, 1)
	assert.Empty(t, res.Traces[0].Children)
}

func TestOptions_Clamping(t *testing.T) {
	o := Options{MaxDepth: 99, MaxElements: 9999}.Normalize()
	assert.Equal(t, MaxDepthLimit, o.MaxDepth)
	assert.Equal(t, MaxElementsLimit, o.MaxElements)

	o = Options{}.Normalize()
	assert.Equal(t, DefaultMaxDepth, o.MaxDepth)
	assert.Equal(t, DefaultMaxElements, o.MaxElements)
}
