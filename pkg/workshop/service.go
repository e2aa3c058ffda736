/*
Package workshop is the application service over the domain model.

Every operation works on whole snapshots: mutations load the workshop from the
store, apply one in-memory change, and save exactly once. Reads never save.
The service is transport-agnostic; the MCP and HTTP adapters shape its results
for their wire formats.
*/
package workshop

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/bigpicture/pkg/domain"
	"github.com/aretw0/bigpicture/pkg/flow"
	"github.com/aretw0/bigpicture/pkg/ports"
	"github.com/aretw0/bigpicture/pkg/query"
	"github.com/aretw0/bigpicture/pkg/stats"
)

// ValidationError reports invalid caller input, as opposed to a missing
// resource or a store failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Service exposes the workshop operations over a WorkshopStore.
type Service struct {
	store ports.WorkshopStore
	log   *slog.Logger
}

// NewService creates a service. A nil logger disables logging.
func NewService(store ports.WorkshopStore, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, log: log}
}

// CreateInput names a new workshop.
type CreateInput struct {
	Name         string
	Description  string
	Domain       string
	Facilitators []string
}

// Create starts a new empty workshop and persists it.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Workshop, error) {
	if in.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	w := domain.NewWorkshop(in.Name, in.Description, in.Domain, in.Facilitators)
	if err := s.store.Save(ctx, w); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "workshop created", "workshop_id", w.Metadata.ID, "name", w.Metadata.Name)
	return w, nil
}

// List returns summaries of all stored workshops, most recently updated first.
func (s *Service) List(ctx context.Context) ([]ports.Summary, error) {
	return s.store.List(ctx)
}

// Get loads a full workshop snapshot.
func (s *Service) Get(ctx context.Context, workshopID string) (*domain.Workshop, error) {
	return s.store.Load(ctx, workshopID)
}

// Delete removes a stored workshop. Deleting a missing ID is not an error.
func (s *Service) Delete(ctx context.Context, workshopID string) error {
	if err := s.store.Delete(ctx, workshopID); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "workshop deleted", "workshop_id", workshopID)
	return nil
}

// AddElement appends a new element to the workshop.
func (s *Service) AddElement(ctx context.Context, workshopID string, in domain.NewElement) (*domain.Element, error) {
	if !in.Type.Valid() {
		return nil, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown element type %q", in.Type)}
	}
	if in.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	w, err := s.store.Load(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	element := w.AddElement(in)
	if err := s.store.Save(ctx, w); err != nil {
		return nil, err
	}
	s.log.DebugContext(ctx, "element added",
		"workshop_id", workshopID, "element_id", element.ID, "type", element.Type)
	return element, nil
}

// UpdateResult reports a partial element update.
type UpdateResult struct {
	Element *domain.Element
	// UpdatedFields names the fields the patch actually changed.
	UpdatedFields []string
}

// UpdateElement applies a partial update to an element.
func (s *Service) UpdateElement(ctx context.Context, workshopID, elementID string, patch domain.ElementPatch) (*UpdateResult, error) {
	w, err := s.store.Load(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	updated, err := w.UpdateElement(elementID, patch)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, w); err != nil {
		return nil, err
	}
	s.log.DebugContext(ctx, "element updated",
		"workshop_id", workshopID, "element_id", elementID, "fields", updated)
	return &UpdateResult{Element: w.FindElement(elementID), UpdatedFields: updated}, nil
}

// DeleteElement removes an element, cascading over trigger lists and context
// memberships, and returns the removed element.
func (s *Service) DeleteElement(ctx context.Context, workshopID, elementID string) (*domain.Element, error) {
	w, err := s.store.Load(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	element, err := w.DeleteElement(elementID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, w); err != nil {
		return nil, err
	}
	s.log.DebugContext(ctx, "element deleted",
		"workshop_id", workshopID, "element_id", elementID, "type", element.Type)
	return element, nil
}

// ContextInput names a new bounded context.
type ContextInput struct {
	Name        string
	Description string
	Color       string
}

// CreateContext adds a bounded context to the workshop.
func (s *Service) CreateContext(ctx context.Context, workshopID string, in ContextInput) (*domain.BoundedContext, error) {
	if in.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	w, err := s.store.Load(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	bc := w.AddBoundedContext(in.Name, in.Description, in.Color)
	if err := s.store.Save(ctx, w); err != nil {
		return nil, err
	}
	s.log.DebugContext(ctx, "bounded context created",
		"workshop_id", workshopID, "context_id", bc.ID, "name", bc.Name)
	return bc, nil
}

// AssignResult reports a batch context assignment. NotFound lists element IDs
// that did not exist; their presence does not fail the call.
type AssignResult struct {
	Context  *domain.BoundedContext
	Assigned []string
	NotFound []string
}

// AssignToContext assigns elements to a bounded context. The write happens
// even when only a subset of the IDs resolved.
func (s *Service) AssignToContext(ctx context.Context, workshopID, contextID string, elementIDs []string) (*AssignResult, error) {
	w, err := s.store.Load(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	assigned, notFound, err := w.AssignToContext(contextID, elementIDs)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, w); err != nil {
		return nil, err
	}
	s.log.DebugContext(ctx, "elements assigned to context",
		"workshop_id", workshopID, "context_id", contextID,
		"assigned", len(assigned), "not_found", len(notFound))
	return &AssignResult{
		Context:  w.FindContext(contextID),
		Assigned: assigned,
		NotFound: notFound,
	}, nil
}

// PageInput selects one result page. Zero values pick the defaults.
type PageInput struct {
	Page     int
	PageSize int
}

func (p PageInput) normalize() (int, int) {
	return query.NormalizePage(p.Page), query.NormalizePageSize(p.PageSize)
}

// ElementPage is one page of elements plus its pagination metadata.
type ElementPage struct {
	Workshop *domain.Workshop
	Elements []*domain.Element
	Page     query.Page
}

// Search returns the elements matching the query and filter, paginated.
func (s *Service) Search(ctx context.Context, workshopID, q string, f query.Filter, page PageInput) (*ElementPage, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, &ValidationError{Field: "element_type", Reason: fmt.Sprintf("unknown element type %q", f.Type)}
	}

	w, err := s.store.Load(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	pageNum, pageSize := page.normalize()
	items, meta := query.Paginate(query.Search(w, q, f), pageNum, pageSize)
	return &ElementPage{Workshop: w, Elements: items, Page: meta}, nil
}

// Timeline returns the elements ordered by position, paginated.
func (s *Service) Timeline(ctx context.Context, workshopID string, f query.Filter, page PageInput) (*ElementPage, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, &ValidationError{Field: "element_type", Reason: fmt.Sprintf("unknown element type %q", f.Type)}
	}

	w, err := s.store.Load(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	pageNum, pageSize := page.normalize()
	items, meta := query.Paginate(query.Timeline(w, f), pageNum, pageSize)
	return &ElementPage{Workshop: w, Elements: items, Page: meta}, nil
}

// ContextOverview is one bounded context with a page of its member elements.
// TypeBreakdown and TotalElements cover the whole membership, not just the
// returned page.
type ContextOverview struct {
	Context       *domain.BoundedContext
	Elements      []*domain.Element
	Page          query.Page
	TypeBreakdown map[domain.ElementType]int
	TotalElements int
}

// OverviewResult holds the overviews of the selected contexts.
type OverviewResult struct {
	Workshop  *domain.Workshop
	Overviews []ContextOverview
}

// ContextOverviews returns per-context membership overviews. Pagination
// applies to the member elements within each context. A non-empty contextID
// restricts the result to that context; an unknown ID yields an empty result,
// not an error.
func (s *Service) ContextOverviews(ctx context.Context, workshopID, contextID string, page PageInput) (*OverviewResult, error) {
	w, err := s.store.Load(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	pageNum, pageSize := page.normalize()

	overviews := []ContextOverview{}
	for _, ov := range query.ContextOverviews(w, contextID) {
		items, meta := query.Paginate(ov.Elements, pageNum, pageSize)
		overviews = append(overviews, ContextOverview{
			Context:       ov.Context,
			Elements:      items,
			Page:          meta,
			TypeBreakdown: ov.TypeBreakdown,
			TotalElements: len(ov.Elements),
		})
	}
	return &OverviewResult{Workshop: w, Overviews: overviews}, nil
}

// StatisticsResult pairs the computed statistics with the snapshot they
// describe.
type StatisticsResult struct {
	Workshop   *domain.Workshop
	Statistics stats.Statistics
}

// Statistics computes counts, relationship and coverage metrics.
func (s *Service) Statistics(ctx context.Context, workshopID string) (*StatisticsResult, error) {
	w, err := s.store.Load(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	return &StatisticsResult{Workshop: w, Statistics: stats.Compute(w)}, nil
}

// FlowResult pairs a trace with the snapshot it was computed on.
type FlowResult struct {
	Workshop *domain.Workshop
	Trace    *flow.Result
}

// TraceFlow traces trigger chains from startID, or from all roots when
// startID is empty.
func (s *Service) TraceFlow(ctx context.Context, workshopID, startID string, opts flow.Options) (*FlowResult, error) {
	w, err := s.store.Load(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	res, err := flow.Trace(w, startID, opts)
	if err != nil {
		return nil, err
	}
	return &FlowResult{Workshop: w, Trace: res}, nil
}
