package workshop_test

import (
	"context"
	"testing"

	"github.com/aretw0/bigpicture/pkg/adapters/memory"
	"github.com/aretw0/bigpicture/pkg/domain"
	"github.com/aretw0/bigpicture/pkg/flow"
	"github.com/aretw0/bigpicture/pkg/query"
	"github.com/aretw0/bigpicture/pkg/workshop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*workshop.Service, context.Context) {
	t.Helper()
	return workshop.NewService(memory.New(), nil), context.Background()
}

func seedWorkshop(t *testing.T, svc *workshop.Service, ctx context.Context) *domain.Workshop {
	t.Helper()
	w, err := svc.Create(ctx, workshop.CreateInput{
		Name:   "Order Fulfillment",
		Domain: "e-commerce",
	})
	require.NoError(t, err)
	return w
}

func TestService_Create(t *testing.T) {
	svc, ctx := newService(t)

	w, err := svc.Create(ctx, workshop.CreateInput{
		Name:         "Checkout",
		Description:  "Payments and carts",
		Domain:       "retail",
		Facilitators: []string{"dana"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, w.Metadata.ID)
	assert.Equal(t, domain.SchemaVersion, w.Metadata.SchemaVersion)

	loaded, err := svc.Get(ctx, w.Metadata.ID)
	require.NoError(t, err)
	assert.Equal(t, "Checkout", loaded.Metadata.Name)
	assert.Equal(t, []string{"dana"}, loaded.Metadata.Facilitators)
}

func TestService_Create_RequiresName(t *testing.T) {
	svc, ctx := newService(t)

	_, err := svc.Create(ctx, workshop.CreateInput{})
	var verr *workshop.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestService_AddElement_PersistsAcrossLoads(t *testing.T) {
	svc, ctx := newService(t)
	w := seedWorkshop(t, svc, ctx)

	e, err := svc.AddElement(ctx, w.Metadata.ID, domain.NewElement{
		Type: domain.TypeEvent,
		Name: "Order Placed",
	})
	require.NoError(t, err)

	loaded, err := svc.Get(ctx, w.Metadata.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Elements, 1)
	assert.Equal(t, e.ID, loaded.Elements[0].ID)
}

func TestService_AddElement_RejectsUnknownType(t *testing.T) {
	svc, ctx := newService(t)
	w := seedWorkshop(t, svc, ctx)

	_, err := svc.AddElement(ctx, w.Metadata.ID, domain.NewElement{
		Type: "sticky_note",
		Name: "X",
	})
	var verr *workshop.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)
}

func TestService_AddElement_WorkshopNotFound(t *testing.T) {
	svc, ctx := newService(t)

	_, err := svc.AddElement(ctx, "missing", domain.NewElement{
		Type: domain.TypeEvent,
		Name: "X",
	})
	assert.ErrorIs(t, err, domain.ErrWorkshopNotFound)
}

func TestService_UpdateElement_ReportsChangedFields(t *testing.T) {
	svc, ctx := newService(t)
	w := seedWorkshop(t, svc, ctx)
	e, err := svc.AddElement(ctx, w.Metadata.ID, domain.NewElement{
		Type: domain.TypeCommand,
		Name: "Place Order",
	})
	require.NoError(t, err)

	name := "Submit Order"
	notes := "renamed during review"
	res, err := svc.UpdateElement(ctx, w.Metadata.ID, e.ID, domain.ElementPatch{
		Name:  &name,
		Notes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "notes"}, res.UpdatedFields)
	assert.Equal(t, "Submit Order", res.Element.Name)

	loaded, err := svc.Get(ctx, w.Metadata.ID)
	require.NoError(t, err)
	assert.Equal(t, "Submit Order", loaded.Elements[0].Name)
}

func TestService_DeleteElement_Cascades(t *testing.T) {
	svc, ctx := newService(t)
	w := seedWorkshop(t, svc, ctx)

	a, err := svc.AddElement(ctx, w.Metadata.ID, domain.NewElement{Type: domain.TypeCommand, Name: "A"})
	require.NoError(t, err)
	b, err := svc.AddElement(ctx, w.Metadata.ID, domain.NewElement{
		Type: domain.TypeEvent, Name: "B", TriggeredBy: []string{a.ID},
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteElement(ctx, w.Metadata.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", deleted.Name)

	loaded, err := svc.Get(ctx, w.Metadata.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Elements, 1)
	assert.Equal(t, b.ID, loaded.Elements[0].ID)
	assert.Empty(t, loaded.Elements[0].TriggeredBy)
}

func TestService_AssignToContext_PartialSuccess(t *testing.T) {
	svc, ctx := newService(t)
	w := seedWorkshop(t, svc, ctx)

	e, err := svc.AddElement(ctx, w.Metadata.ID, domain.NewElement{Type: domain.TypeAggregate, Name: "Order"})
	require.NoError(t, err)
	bc, err := svc.CreateContext(ctx, w.Metadata.ID, workshop.ContextInput{Name: "Ordering"})
	require.NoError(t, err)

	res, err := svc.AssignToContext(ctx, w.Metadata.ID, bc.ID, []string{e.ID, "ghost"})
	require.NoError(t, err)
	assert.Equal(t, []string{e.ID}, res.Assigned)
	assert.Equal(t, []string{"ghost"}, res.NotFound)

	// The partial assignment was persisted.
	loaded, err := svc.Get(ctx, w.Metadata.ID)
	require.NoError(t, err)
	assert.Equal(t, bc.ID, loaded.Elements[0].BoundedContextID)
	assert.Equal(t, []string{e.ID}, loaded.BoundedContexts[0].ElementIDs)
}

func TestService_AssignToContext_ContextNotFound(t *testing.T) {
	svc, ctx := newService(t)
	w := seedWorkshop(t, svc, ctx)

	_, err := svc.AssignToContext(ctx, w.Metadata.ID, "missing", []string{"whatever"})
	assert.ErrorIs(t, err, domain.ErrContextNotFound)
}

func TestService_SearchAndTimeline_Paginate(t *testing.T) {
	svc, ctx := newService(t)
	w := seedWorkshop(t, svc, ctx)

	names := []string{"Order Placed", "Order Shipped", "Payment Captured"}
	for _, name := range names {
		_, err := svc.AddElement(ctx, w.Metadata.ID, domain.NewElement{Type: domain.TypeEvent, Name: name})
		require.NoError(t, err)
	}

	res, err := svc.Search(ctx, w.Metadata.ID, "order", query.Filter{}, workshop.PageInput{PageSize: 1})
	require.NoError(t, err)
	require.Len(t, res.Elements, 1)
	assert.Equal(t, 2, res.Page.TotalItems)
	assert.Equal(t, 2, res.Page.TotalPages)
	assert.True(t, res.Page.HasNext)

	tl, err := svc.Timeline(ctx, w.Metadata.ID, query.Filter{Type: domain.TypeEvent}, workshop.PageInput{})
	require.NoError(t, err)
	require.Len(t, tl.Elements, 3)
	assert.Equal(t, "Order Placed", tl.Elements[0].Name)
	assert.Equal(t, "Payment Captured", tl.Elements[2].Name)
}

func TestService_Search_RejectsUnknownTypeFilter(t *testing.T) {
	svc, ctx := newService(t)
	w := seedWorkshop(t, svc, ctx)

	_, err := svc.Search(ctx, w.Metadata.ID, "x", query.Filter{Type: "widget"}, workshop.PageInput{})
	var verr *workshop.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestService_ContextOverviewAndStatistics(t *testing.T) {
	svc, ctx := newService(t)
	w := seedWorkshop(t, svc, ctx)

	e, err := svc.AddElement(ctx, w.Metadata.ID, domain.NewElement{Type: domain.TypeEvent, Name: "Order Placed"})
	require.NoError(t, err)
	bc, err := svc.CreateContext(ctx, w.Metadata.ID, workshop.ContextInput{Name: "Ordering"})
	require.NoError(t, err)
	_, err = svc.AssignToContext(ctx, w.Metadata.ID, bc.ID, []string{e.ID})
	require.NoError(t, err)

	ov, err := svc.ContextOverviews(ctx, w.Metadata.ID, "", workshop.PageInput{})
	require.NoError(t, err)
	require.Len(t, ov.Overviews, 1)
	assert.Equal(t, 1, ov.Overviews[0].TypeBreakdown[domain.TypeEvent])
	assert.Equal(t, 1, ov.Overviews[0].TotalElements)
	require.Len(t, ov.Overviews[0].Elements, 1)
	assert.Equal(t, e.ID, ov.Overviews[0].Elements[0].ID)

	st, err := svc.Statistics(ctx, w.Metadata.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Statistics.Totals.Elements)
	assert.Equal(t, 1, st.Statistics.ByContext["Ordering"])
	assert.InDelta(t, 100.0, st.Statistics.Coverage.PercentContextualized, 0.001)
}

func TestService_TraceFlow(t *testing.T) {
	svc, ctx := newService(t)
	w := seedWorkshop(t, svc, ctx)

	a, err := svc.AddElement(ctx, w.Metadata.ID, domain.NewElement{Type: domain.TypeCommand, Name: "Place Order"})
	require.NoError(t, err)
	_, err = svc.AddElement(ctx, w.Metadata.ID, domain.NewElement{
		Type: domain.TypeEvent, Name: "Order Placed", TriggeredBy: []string{a.ID},
	})
	require.NoError(t, err)
	b, err := svc.Get(ctx, w.Metadata.ID)
	require.NoError(t, err)
	triggers := []string{b.Elements[1].ID}
	_, err = svc.UpdateElement(ctx, w.Metadata.ID, a.ID, domain.ElementPatch{Triggers: &triggers})
	require.NoError(t, err)

	res, err := svc.TraceFlow(ctx, w.Metadata.ID, a.ID, flow.Options{})
	require.NoError(t, err)
	require.Len(t, res.Trace.Traces, 1)
	assert.Equal(t, a.ID, res.Trace.Traces[0].Element.ID)
	require.Len(t, res.Trace.Traces[0].Children, 1)
	assert.Equal(t, "Order Placed", res.Trace.Traces[0].Children[0].Element.Name)

	_, err = svc.TraceFlow(ctx, w.Metadata.ID, "missing", flow.Options{})
	assert.ErrorIs(t, err, domain.ErrElementNotFound)
}
