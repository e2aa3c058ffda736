package mcp

import (
	"context"
	"unicode"

	"github.com/aretw0/bigpicture/internal/presentation/markdown"
	"github.com/aretw0/bigpicture/pkg/domain"
	"github.com/aretw0/bigpicture/pkg/flow"
	"github.com/aretw0/bigpicture/pkg/query"
	"github.com/aretw0/bigpicture/pkg/workshop"
	"github.com/mark3labs/mcp-go/mcp"
)

// elementSummary is the compact JSON view of an element.
type elementSummary struct {
	ID               string             `json:"id"`
	Type             domain.ElementType `json:"type"`
	Name             string             `json:"name"`
	Position         int                `json:"position"`
	BoundedContextID string             `json:"bounded_context_id"`
}

func summarize(e *domain.Element) elementSummary {
	return elementSummary{
		ID:               e.ID,
		Type:             e.Type,
		Name:             e.Name,
		Position:         e.Position,
		BoundedContextID: e.BoundedContextID,
	}
}

func summarizeAll(elements []*domain.Element) []elementSummary {
	out := make([]elementSummary, 0, len(elements))
	for _, e := range elements {
		out = append(out, summarize(e))
	}
	return out
}

// elementsJSON renders a page of elements at the requested detail level.
func elementsJSON(elements []*domain.Element, detail markdown.Detail) any {
	if detail == markdown.DetailFull {
		return elements
	}
	return summarizeAll(elements)
}

// titleWord uppercases the first letter of each word, matching how the
// confirmation messages have always read ("Read_Model", "Event").
func titleWord(s string) string {
	out := []rune(s)
	prevLetter := false
	for i, r := range out {
		if unicode.IsLetter(r) {
			if prevLetter {
				out[i] = unicode.ToLower(r)
			} else {
				out[i] = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}
	return string(out)
}

func formatOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("response_format",
			mcp.Description("Output format: markdown or json"),
			mcp.Enum("markdown", "json"),
			mcp.DefaultString("markdown"),
		),
		mcp.WithString("detail_level",
			mcp.Description("summary (essential fields) or full (all data)"),
			mcp.Enum("summary", "full"),
			mcp.DefaultString("summary"),
		),
	}
}

func pageOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("page", mcp.Description("Page number (default: 1)")),
		mcp.WithNumber("page_size", mcp.Description("Items per page (default: 50, max: 200)")),
	}
}

func (s *Server) registerTools() {
	s.registerWorkshopTools()
	s.registerElementTools()
	s.registerContextTools()
	s.registerQueryTools()
	s.registerTransferTools()
}

func (s *Server) registerWorkshopTools() {
	s.mcpServer.AddTool(mcp.NewTool("eventstorming_create_workshop",
		mcp.WithDescription("Create a new Event Storming workshop session. Returns the workshop ID used by all subsequent operations."),
		mcp.WithTitleAnnotation("Create Event Storming Workshop"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("name", mcp.Required(), mcp.Description("Workshop name")),
		mcp.WithString("description", mcp.Description("Workshop description")),
		mcp.WithString("domain", mcp.Description("Domain/project name")),
		mcp.WithArray("facilitators", mcp.Description("Facilitator names"),
			mcp.Items(map[string]any{"type": "string"})),
	), s.handleCreateWorkshop)

	s.mcpServer.AddTool(mcp.NewTool("eventstorming_list_workshops",
		mcp.WithDescription("List all available Event Storming workshops with their basic metadata."),
		mcp.WithTitleAnnotation("List Event Storming Workshops"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	), s.handleListWorkshops)

	s.mcpServer.AddTool(mcp.NewTool("eventstorming_load_workshop",
		append([]mcp.ToolOption{
			mcp.WithDescription("Load an existing Event Storming workshop with all its elements, bounded contexts, and metadata."),
			mcp.WithTitleAnnotation("Load Event Storming Workshop"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithString("workshop_id", mcp.Required(), mcp.Description("Workshop ID from list_workshops")),
		}, formatOptions()...)...,
	), s.handleLoadWorkshop)
}

func (s *Server) registerElementTools() {
	s.mcpServer.AddTool(mcp.NewTool("eventstorming_add_element",
		mcp.WithDescription("Add a new element to the workshop: event, command, actor, aggregate, policy, read_model, external_system, or hotspot."),
		mcp.WithTitleAnnotation("Add Event Storming Element"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("workshop_id", mcp.Required(), mcp.Description("Workshop ID")),
		mcp.WithString("type", mcp.Required(), mcp.Description("Element type"),
			mcp.Enum("event", "command", "actor", "aggregate", "policy", "read_model", "external_system", "hotspot")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Element name")),
		mcp.WithNumber("position", mcp.Description("Timeline position (auto-assigned per type when omitted)")),
		mcp.WithString("notes", mcp.Description("Notes and detailed description")),
		mcp.WithString("created_by", mcp.Description("Creator name")),
		mcp.WithArray("triggers", mcp.Description("Element IDs this element triggers"),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("triggered_by", mcp.Description("Element IDs that trigger this element"),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("bounded_context_id", mcp.Description("Context to assign to")),
	), s.handleAddElement)

	s.mcpServer.AddTool(mcp.NewTool("eventstorming_update_element",
		mcp.WithDescription("Update an existing element. Only provided fields are changed; pass bounded_context_id=\"null\" to clear the context."),
		mcp.WithTitleAnnotation("Update Event Storming Element"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("workshop_id", mcp.Required(), mcp.Description("Workshop ID")),
		mcp.WithString("element_id", mcp.Required(), mcp.Description("Element ID to update")),
		mcp.WithString("name", mcp.Description("New name")),
		mcp.WithNumber("position", mcp.Description("New position")),
		mcp.WithString("notes", mcp.Description("New notes")),
		mcp.WithArray("triggers", mcp.Description("Replacement triggers list"),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("triggered_by", mcp.Description("Replacement triggered_by list"),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("bounded_context_id", mcp.Description("New context, or \"null\" to clear")),
	), s.handleUpdateElement)

	s.mcpServer.AddTool(mcp.NewTool("eventstorming_delete_element",
		mcp.WithDescription("Delete an element and clean up all references to it in triggers, triggered_by, and context assignments."),
		mcp.WithTitleAnnotation("Delete Event Storming Element"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("workshop_id", mcp.Required(), mcp.Description("Workshop ID")),
		mcp.WithString("element_id", mcp.Required(), mcp.Description("Element ID to delete")),
	), s.handleDeleteElement)
}

func (s *Server) registerContextTools() {
	s.mcpServer.AddTool(mcp.NewTool("eventstorming_create_bounded_context",
		mcp.WithDescription("Create a new bounded context grouping related elements into a clear domain boundary."),
		mcp.WithTitleAnnotation("Create Bounded Context"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("workshop_id", mcp.Required(), mcp.Description("Workshop ID")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Context name")),
		mcp.WithString("description", mcp.Description("Context description")),
		mcp.WithString("color", mcp.Description("Visual color code")),
	), s.handleCreateContext)

	s.mcpServer.AddTool(mcp.NewTool("eventstorming_assign_to_context",
		mcp.WithDescription("Assign multiple elements to a bounded context. Unknown element IDs are reported as warnings, not errors."),
		mcp.WithTitleAnnotation("Assign Elements to Bounded Context"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("workshop_id", mcp.Required(), mcp.Description("Workshop ID")),
		mcp.WithString("context_id", mcp.Required(), mcp.Description("Bounded context ID")),
		mcp.WithArray("element_ids", mcp.Required(), mcp.Description("Element IDs to assign"),
			mcp.Items(map[string]any{"type": "string"})),
	), s.handleAssignToContext)
}

func (s *Server) registerQueryTools() {
	s.mcpServer.AddTool(mcp.NewTool("eventstorming_search_elements",
		append([]mcp.ToolOption{
			mcp.WithDescription("Search element names and notes by keyword, with optional type and context filters."),
			mcp.WithTitleAnnotation("Search Event Storming Elements"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithString("workshop_id", mcp.Required(), mcp.Description("Workshop ID")),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
			mcp.WithString("element_type", mcp.Description("Filter by element type")),
			mcp.WithString("bounded_context_id", mcp.Description("Filter by bounded context")),
		}, append(pageOptions(), formatOptions()...)...)...,
	), s.handleSearchElements)

	s.mcpServer.AddTool(mcp.NewTool("eventstorming_get_timeline",
		append([]mcp.ToolOption{
			mcp.WithDescription("View elements in timeline order, the chronological flow of the domain."),
			mcp.WithTitleAnnotation("Get Event Timeline"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithString("workshop_id", mcp.Required(), mcp.Description("Workshop ID")),
			mcp.WithString("element_type", mcp.Description("Filter by element type")),
			mcp.WithString("bounded_context_id", mcp.Description("Filter by bounded context")),
		}, append(pageOptions(), formatOptions()...)...)...,
	), s.handleGetTimeline)

	s.mcpServer.AddTool(mcp.NewTool("eventstorming_get_context_overview",
		append([]mcp.ToolOption{
			mcp.WithDescription("View bounded contexts with their assigned elements and per-type breakdowns."),
			mcp.WithTitleAnnotation("Get Bounded Context Overview"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithString("workshop_id", mcp.Required(), mcp.Description("Workshop ID")),
			mcp.WithString("context_id", mcp.Description("Specific context (all if omitted)")),
		}, append(pageOptions(), formatOptions()...)...)...,
	), s.handleGetContextOverview)

	s.mcpServer.AddTool(mcp.NewTool("eventstorming_get_statistics",
		append([]mcp.ToolOption{
			mcp.WithDescription("Get workshop statistics: counts by type and context, relationship metrics, and coverage."),
			mcp.WithTitleAnnotation("Get Workshop Statistics"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithString("workshop_id", mcp.Required(), mcp.Description("Workshop ID")),
		}, formatOptions()...)...,
	), s.handleGetStatistics)

	s.mcpServer.AddTool(mcp.NewTool("eventstorming_visualize_flow",
		mcp.WithDescription("Trace cause and effect through trigger relationships, from one element or from all roots."),
		mcp.WithTitleAnnotation("Visualize Event Flow"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("workshop_id", mcp.Required(), mcp.Description("Workshop ID")),
		mcp.WithString("start_element_id", mcp.Description("Start element (all roots if omitted)")),
		mcp.WithNumber("max_depth", mcp.Description("Maximum depth to traverse (default: 5, max: 20)")),
		mcp.WithNumber("max_elements", mcp.Description("Maximum elements to display (default: 100, max: 500)")),
	), s.handleVisualizeFlow)
}

func (s *Server) registerTransferTools() {
	s.mcpServer.AddTool(mcp.NewTool("eventstorming_export_workshop",
		mcp.WithDescription("Export workshop data as JSON for sharing or backup."),
		mcp.WithTitleAnnotation("Export Event Storming Workshop"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("workshop_id", mcp.Required(), mcp.Description("Workshop ID")),
		mcp.WithBoolean("include_metadata", mcp.Description("Include full workshop metadata (default: true)")),
	), s.handleExportWorkshop)

	s.mcpServer.AddTool(mcp.NewTool("eventstorming_import_workshop",
		mcp.WithDescription("Import a workshop from exported JSON. The imported workshop gets a new ID and can be renamed."),
		mcp.WithTitleAnnotation("Import Event Storming Workshop"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("workshop_data", mcp.Required(), mcp.Description("JSON workshop data")),
		mcp.WithString("new_name", mcp.Description("New name for the imported workshop")),
	), s.handleImportWorkshop)
}

// Workshop management handlers

func (s *Server) handleCreateWorkshop(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args createWorkshopArgs
	if err := decodeArgs(request, &args); err != nil {
		return s.toolError(err), nil
	}

	w, err := s.svc.Create(ctx, workshop.CreateInput{
		Name:         args.Name,
		Description:  args.Description,
		Domain:       args.Domain,
		Facilitators: args.Facilitators,
	})
	if err != nil {
		return s.toolError(err), nil
	}

	return jsonResult(map[string]any{
		"success":     true,
		"workshop_id": w.Metadata.ID,
		"name":        w.Metadata.Name,
		"message":     "Workshop '" + w.Metadata.Name + "' created successfully",
	}), nil
}

func (s *Server) handleListWorkshops(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := s.svc.List(ctx)
	if err != nil {
		return s.toolError(err), nil
	}
	return jsonResult(map[string]any{
		"workshops": summaries,
		"total":     len(summaries),
	}), nil
}

func (s *Server) handleLoadWorkshop(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args loadWorkshopArgs
	if err := decodeArgs(request, &args); err != nil {
		return s.toolError(err), nil
	}

	w, err := s.svc.Get(ctx, args.WorkshopID)
	if err != nil {
		return s.toolError(err), nil
	}

	detail := markdown.ParseDetail(args.DetailLevel)
	if args.json() {
		if detail == markdown.DetailSummary {
			contexts := make([]map[string]any, 0, len(w.BoundedContexts))
			for _, bc := range w.BoundedContexts {
				contexts = append(contexts, map[string]any{
					"id":            bc.ID,
					"name":          bc.Name,
					"element_count": len(bc.ElementIDs),
				})
			}
			return jsonResult(map[string]any{
				"metadata":         w.Metadata,
				"elements":         summarizeAll(w.Elements),
				"bounded_contexts": contexts,
				"statistics": map[string]any{
					"total_elements": len(w.Elements),
					"total_contexts": len(w.BoundedContexts),
				},
			}), nil
		}
		return jsonResult(w), nil
	}

	return mcp.NewToolResultText(markdown.WorkshopOverview(w, detail)), nil
}

// Element handlers

func (s *Server) handleAddElement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args addElementArgs
	if err := decodeArgs(request, &args); err != nil {
		return s.toolError(err), nil
	}

	e, err := s.svc.AddElement(ctx, args.WorkshopID, domain.NewElement{
		Type:             domain.ElementType(args.Type),
		Name:             args.Name,
		Position:         args.Position,
		Notes:            args.Notes,
		CreatedBy:        args.CreatedBy,
		Triggers:         args.Triggers,
		TriggeredBy:      args.TriggeredBy,
		BoundedContextID: args.BoundedContextID,
	})
	if err != nil {
		return s.toolError(err), nil
	}

	return jsonResult(map[string]any{
		"success":    true,
		"element_id": e.ID,
		"type":       e.Type,
		"name":       e.Name,
		"position":   e.Position,
		"message":    titleWord(string(e.Type)) + " '" + e.Name + "' added successfully",
	}), nil
}

func (s *Server) handleUpdateElement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args updateElementArgs
	if err := decodeArgs(request, &args); err != nil {
		return s.toolError(err), nil
	}

	res, err := s.svc.UpdateElement(ctx, args.WorkshopID, args.ElementID, domain.ElementPatch{
		Name:             args.Name,
		Position:         args.Position,
		Notes:            args.Notes,
		Triggers:         args.Triggers,
		TriggeredBy:      args.TriggeredBy,
		BoundedContextID: args.BoundedContextID,
	})
	if err != nil {
		return s.toolError(err), nil
	}

	return jsonResult(map[string]any{
		"success":        true,
		"element_id":     args.ElementID,
		"updated_fields": res.UpdatedFields,
		"message":        "Element updated successfully",
	}), nil
}

func (s *Server) handleDeleteElement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args deleteElementArgs
	if err := decodeArgs(request, &args); err != nil {
		return s.toolError(err), nil
	}

	deleted, err := s.svc.DeleteElement(ctx, args.WorkshopID, args.ElementID)
	if err != nil {
		return s.toolError(err), nil
	}

	return jsonResult(map[string]any{
		"success": true,
		"deleted_element": map[string]any{
			"id":   deleted.ID,
			"name": deleted.Name,
			"type": deleted.Type,
		},
		"message": titleWord(string(deleted.Type)) + " '" + deleted.Name + "' deleted successfully",
	}), nil
}

// Bounded context handlers

func (s *Server) handleCreateContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args createContextArgs
	if err := decodeArgs(request, &args); err != nil {
		return s.toolError(err), nil
	}

	bc, err := s.svc.CreateContext(ctx, args.WorkshopID, workshop.ContextInput{
		Name:        args.Name,
		Description: args.Description,
		Color:       args.Color,
	})
	if err != nil {
		return s.toolError(err), nil
	}

	return jsonResult(map[string]any{
		"success":    true,
		"context_id": bc.ID,
		"name":       bc.Name,
		"message":    "Bounded context '" + bc.Name + "' created successfully",
	}), nil
}

func (s *Server) handleAssignToContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args assignToContextArgs
	if err := decodeArgs(request, &args); err != nil {
		return s.toolError(err), nil
	}

	res, err := s.svc.AssignToContext(ctx, args.WorkshopID, args.ContextID, args.ElementIDs)
	if err != nil {
		return s.toolError(err), nil
	}

	payload := map[string]any{
		"success":           true,
		"context_name":      res.Context.Name,
		"assigned_count":    len(res.Assigned),
		"assigned_elements": res.Assigned,
	}
	if len(res.NotFound) > 0 {
		payload["warnings"] = "Elements not found: " + joinIDs(res.NotFound)
	}
	return jsonResult(payload), nil
}

func joinIDs(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ", "
		}
		out += id
	}
	return out
}

// Query handlers

func (s *Server) handleSearchElements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args searchElementsArgs
	if err := decodeArgs(request, &args); err != nil {
		return s.toolError(err), nil
	}

	res, err := s.svc.Search(ctx, args.WorkshopID, args.Query, query.Filter{
		Type:      domain.ElementType(args.ElementType),
		ContextID: args.BoundedContextID,
	}, workshop.PageInput{Page: args.Page, PageSize: args.PageSize})
	if err != nil {
		return s.toolError(err), nil
	}

	detail := markdown.ParseDetail(args.DetailLevel)
	if args.json() {
		return jsonResult(map[string]any{
			"query":      args.Query,
			"matches":    elementsJSON(res.Elements, detail),
			"pagination": res.Page,
		}), nil
	}
	return mcp.NewToolResultText(markdown.SearchResults(args.Query, res.Elements, res.Page, detail)), nil
}

func (s *Server) handleGetTimeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args timelineArgs
	if err := decodeArgs(request, &args); err != nil {
		return s.toolError(err), nil
	}

	res, err := s.svc.Timeline(ctx, args.WorkshopID, query.Filter{
		Type:      domain.ElementType(args.ElementType),
		ContextID: args.BoundedContextID,
	}, workshop.PageInput{Page: args.Page, PageSize: args.PageSize})
	if err != nil {
		return s.toolError(err), nil
	}

	detail := markdown.ParseDetail(args.DetailLevel)
	if args.json() {
		return jsonResult(map[string]any{
			"timeline":   elementsJSON(res.Elements, detail),
			"pagination": res.Page,
		}), nil
	}

	contextName := ""
	if args.BoundedContextID != "" {
		if bc := res.Workshop.FindContext(args.BoundedContextID); bc != nil {
			contextName = bc.Name
		}
	}
	return mcp.NewToolResultText(markdown.Timeline(
		res.Workshop, domain.ElementType(args.ElementType), contextName,
		res.Elements, res.Page, detail)), nil
}

func (s *Server) handleGetContextOverview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args contextOverviewArgs
	if err := decodeArgs(request, &args); err != nil {
		return s.toolError(err), nil
	}

	res, err := s.svc.ContextOverviews(ctx, args.WorkshopID, args.ContextID,
		workshop.PageInput{Page: args.Page, PageSize: args.PageSize})
	if err != nil {
		return s.toolError(err), nil
	}

	detail := markdown.ParseDetail(args.DetailLevel)
	if args.json() {
		out := make([]map[string]any, 0, len(res.Overviews))
		for _, ov := range res.Overviews {
			out = append(out, map[string]any{
				"context":        ov.Context,
				"elements":       elementsJSON(ov.Elements, detail),
				"pagination":     ov.Page,
				"type_breakdown": ov.TypeBreakdown,
			})
		}
		return jsonResult(out), nil
	}
	return mcp.NewToolResultText(markdown.ContextOverviews(res.Workshop, res.Overviews, detail)), nil
}

func (s *Server) handleGetStatistics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args statisticsArgs
	if err := decodeArgs(request, &args); err != nil {
		return s.toolError(err), nil
	}

	res, err := s.svc.Statistics(ctx, args.WorkshopID)
	if err != nil {
		return s.toolError(err), nil
	}

	if args.json() {
		meta := res.Workshop.Metadata
		return jsonResult(map[string]any{
			"workshop": map[string]any{
				"name":       meta.Name,
				"domain":     meta.Domain,
				"created_at": meta.CreatedAt,
				"updated_at": meta.UpdatedAt,
			},
			"totals":        res.Statistics.Totals,
			"by_type":       res.Statistics.ByType,
			"by_context":    res.Statistics.ByContext,
			"relationships": res.Statistics.Relationships,
			"coverage":      res.Statistics.Coverage,
		}), nil
	}
	return mcp.NewToolResultText(markdown.Statistics(res.Workshop, res.Statistics)), nil
}

func (s *Server) handleVisualizeFlow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args visualizeFlowArgs
	if err := decodeArgs(request, &args); err != nil {
		return s.toolError(err), nil
	}

	opts := flow.Options{MaxDepth: args.MaxDepth, MaxElements: args.MaxElements}.Normalize()
	res, err := s.svc.TraceFlow(ctx, args.WorkshopID, args.StartElementID, opts)
	if err != nil {
		return s.toolError(err), nil
	}

	var start *domain.Element
	if args.StartElementID != "" {
		start = res.Workshop.FindElement(args.StartElementID)
	}
	return mcp.NewToolResultText(markdown.Flow(res.Workshop, start, res.Trace, opts.MaxElements)), nil
}

// Transfer handlers

func (s *Server) handleExportWorkshop(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args exportWorkshopArgs
	if err := decodeArgs(request, &args); err != nil {
		return s.toolError(err), nil
	}

	includeMetadata := true
	if args.IncludeMetadata != nil {
		includeMetadata = *args.IncludeMetadata
	}

	payload, err := s.svc.Export(ctx, args.WorkshopID, includeMetadata)
	if err != nil {
		return s.toolError(err), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) handleImportWorkshop(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args importWorkshopArgs
	if err := decodeArgs(request, &args); err != nil {
		return s.toolError(err), nil
	}

	w, err := s.svc.Import(ctx, []byte(args.WorkshopData), args.NewName)
	if err != nil {
		return s.toolError(err), nil
	}

	return jsonResult(map[string]any{
		"success":     true,
		"workshop_id": w.Metadata.ID,
		"name":        w.Metadata.Name,
		"message":     "Workshop imported successfully",
		"statistics": map[string]any{
			"elements":         len(w.Elements),
			"bounded_contexts": len(w.BoundedContexts),
		},
	}), nil
}
