package stats

import (
	"testing"

	"github.com/aretw0/bigpicture/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_EmptyWorkshop(t *testing.T) {
	s := Compute(domain.NewWorkshop("Empty", "", "", nil))

	require.Len(t, s.ByType, 8, "all eight type keys present even with zero elements")
	for _, typ := range domain.ElementTypes {
		count, ok := s.ByType[typ]
		assert.True(t, ok)
		assert.Zero(t, count)
	}
	assert.Zero(t, s.Totals.Elements)
	assert.Zero(t, s.Coverage.PercentContextualized)
}

func TestCompute(t *testing.T) {
	w := domain.NewWorkshop("Stats", "", "", nil)
	ctx := w.AddBoundedContext("Core", "", "")

	a := w.AddElement(domain.NewElement{Type: domain.TypeCommand, Name: "Place Order"})
	b := w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "Order Placed", TriggeredBy: []string{a.ID}})
	w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "Order Shipped"})
	_, err := w.UpdateElement(a.ID, domain.ElementPatch{Triggers: &[]string{b.ID, "dangling"}})
	require.NoError(t, err)
	_, _, err = w.AssignToContext(ctx.ID, []string{a.ID, b.ID})
	require.NoError(t, err)

	s := Compute(w)

	assert.Equal(t, 3, s.Totals.Elements)
	assert.Equal(t, 1, s.Totals.BoundedContexts)
	assert.Equal(t, 2, s.ByType[domain.TypeEvent])
	assert.Equal(t, 1, s.ByType[domain.TypeCommand])
	assert.Equal(t, 0, s.ByType[domain.TypeHotspot])

	assert.Equal(t, 2, s.ByContext["Core"])

	assert.Equal(t, 1, s.Relationships.ElementsWithTriggers)
	assert.Equal(t, 1, s.Relationships.ElementsWithTriggeredBy)
	assert.Equal(t, 2, s.Relationships.TotalTriggerLinks, "edge count sums trigger list lengths, dangling ids included")

	assert.Equal(t, 2, s.Coverage.ElementsInContexts)
	assert.Equal(t, 1, s.Coverage.ElementsWithoutContext)
	assert.InDelta(t, 66.67, s.Coverage.PercentContextualized, 0.01)
}

func TestCompute_DuplicateContextNamesMerge(t *testing.T) {
	w := domain.NewWorkshop("Dup", "", "", nil)
	c1 := w.AddBoundedContext("Shared", "", "")
	c2 := w.AddBoundedContext("Shared", "", "")
	e1 := w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "One", BoundedContextID: c1.ID})
	e2 := w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "Two", BoundedContextID: c2.ID})
	_ = e1
	_ = e2

	s := Compute(w)
	require.Len(t, s.ByContext, 1)
	assert.Equal(t, 2, s.ByContext["Shared"])
}
