package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/bigpicture/pkg/adapters/memory"
	"github.com/aretw0/bigpicture/pkg/workshop"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(workshop.NewService(memory.New(), nil), nil)
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok, "expected text content")
	return text.Text
}

func createWorkshop(t *testing.T, s *Server) string {
	t.Helper()
	res, err := s.handleCreateWorkshop(context.Background(), callRequest(map[string]any{
		"name":   "Order Fulfillment",
		"domain": "e-commerce",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var out struct {
		WorkshopID string `json:"workshop_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	require.NotEmpty(t, out.WorkshopID)
	return out.WorkshopID
}

func addElement(t *testing.T, s *Server, workshopID string, args map[string]any) string {
	t.Helper()
	args["workshop_id"] = workshopID
	res, err := s.handleAddElement(context.Background(), callRequest(args))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var out struct {
		ElementID string `json:"element_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	return out.ElementID
}

func TestHandleCreateWorkshop(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleCreateWorkshop(context.Background(), callRequest(map[string]any{
		"name":         "Checkout",
		"facilitators": []any{"dana", "kim"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, `"success": true`)
	assert.Contains(t, text, "Workshop 'Checkout' created successfully")
}

func TestHandleCreateWorkshop_MissingName(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleCreateWorkshop(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "name")
}

func TestHandleAddElement(t *testing.T) {
	s := newTestServer(t)
	id := createWorkshop(t, s)

	res, err := s.handleAddElement(context.Background(), callRequest(map[string]any{
		"workshop_id": id,
		"type":        "read_model",
		"name":        "Order Summary",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Read_Model 'Order Summary' added successfully")
}

func TestHandleAddElement_WorkshopNotFound(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleAddElement(context.Background(), callRequest(map[string]any{
		"workshop_id": "missing",
		"type":        "event",
		"name":        "X",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "eventstorming_list_workshops")
}

func TestHandleUpdateElement_OnlyProvidedFields(t *testing.T) {
	s := newTestServer(t)
	id := createWorkshop(t, s)
	elementID := addElement(t, s, id, map[string]any{"type": "command", "name": "Place Order"})

	res, err := s.handleUpdateElement(context.Background(), callRequest(map[string]any{
		"workshop_id": id,
		"element_id":  elementID,
		"notes":       "checked during review",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var out struct {
		UpdatedFields []string `json:"updated_fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, []string{"notes"}, out.UpdatedFields)
}

func TestHandleDeleteElement(t *testing.T) {
	s := newTestServer(t)
	id := createWorkshop(t, s)
	elementID := addElement(t, s, id, map[string]any{"type": "event", "name": "Order Placed"})

	res, err := s.handleDeleteElement(context.Background(), callRequest(map[string]any{
		"workshop_id": id,
		"element_id":  elementID,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Event 'Order Placed' deleted successfully")
}

func TestHandleAssignToContext_Warnings(t *testing.T) {
	s := newTestServer(t)
	id := createWorkshop(t, s)
	elementID := addElement(t, s, id, map[string]any{"type": "aggregate", "name": "Order"})

	ctxRes, err := s.handleCreateContext(context.Background(), callRequest(map[string]any{
		"workshop_id": id,
		"name":        "Ordering",
	}))
	require.NoError(t, err)
	var ctxOut struct {
		ContextID string `json:"context_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, ctxRes)), &ctxOut))

	res, err := s.handleAssignToContext(context.Background(), callRequest(map[string]any{
		"workshop_id": id,
		"context_id":  ctxOut.ContextID,
		"element_ids": []any{elementID, "ghost"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, `"assigned_count": 1`)
	assert.Contains(t, text, "Elements not found: ghost")
}

func TestHandleSearchElements_MarkdownAndJSON(t *testing.T) {
	s := newTestServer(t)
	id := createWorkshop(t, s)
	addElement(t, s, id, map[string]any{"type": "event", "name": "Order Placed"})
	addElement(t, s, id, map[string]any{"type": "event", "name": "Payment Captured"})

	res, err := s.handleSearchElements(context.Background(), callRequest(map[string]any{
		"workshop_id": id,
		"query":       "order",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	md := resultText(t, res)
	assert.Contains(t, md, "# Search Results: 'order'")
	assert.Contains(t, md, "Found 1 matching element(s)")

	res, err = s.handleSearchElements(context.Background(), callRequest(map[string]any{
		"workshop_id":     id,
		"query":           "order",
		"response_format": "json",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var out struct {
		Query      string `json:"query"`
		Matches    []any  `json:"matches"`
		Pagination struct {
			TotalItems int `json:"total_items"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "order", out.Query)
	assert.Len(t, out.Matches, 1)
	assert.Equal(t, 1, out.Pagination.TotalItems)
}

func TestHandleGetTimeline_PageClamping(t *testing.T) {
	s := newTestServer(t)
	id := createWorkshop(t, s)
	addElement(t, s, id, map[string]any{"type": "event", "name": "A"})
	addElement(t, s, id, map[string]any{"type": "event", "name": "B"})

	// Page numbers arrive as JSON floats; the decoder tolerates that.
	res, err := s.handleGetTimeline(context.Background(), callRequest(map[string]any{
		"workshop_id":     id,
		"page":            float64(99),
		"page_size":       float64(1),
		"response_format": "json",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var out struct {
		Timeline   []any `json:"timeline"`
		Pagination struct {
			Page       int `json:"page"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, 2, out.Pagination.Page)
	assert.Equal(t, 2, out.Pagination.TotalPages)
	assert.Len(t, out.Timeline, 1)
}

func TestHandleVisualizeFlow(t *testing.T) {
	s := newTestServer(t)
	id := createWorkshop(t, s)
	a := addElement(t, s, id, map[string]any{"type": "command", "name": "Place Order"})
	addElement(t, s, id, map[string]any{
		"type":         "event",
		"name":         "Order Placed",
		"triggered_by": []any{a},
	})

	res, err := s.handleVisualizeFlow(context.Background(), callRequest(map[string]any{
		"workshop_id": id,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "# Event Flow Visualization")
	assert.Contains(t, text, "## Flow from: Place Order")
}

func TestHandleExportImport(t *testing.T) {
	s := newTestServer(t)
	id := createWorkshop(t, s)
	addElement(t, s, id, map[string]any{"type": "event", "name": "Order Placed"})

	exportRes, err := s.handleExportWorkshop(context.Background(), callRequest(map[string]any{
		"workshop_id": id,
	}))
	require.NoError(t, err)
	require.False(t, exportRes.IsError)
	payload := resultText(t, exportRes)
	assert.Contains(t, payload, "export_info")

	importRes, err := s.handleImportWorkshop(context.Background(), callRequest(map[string]any{
		"workshop_data": payload,
		"new_name":      "Restored",
	}))
	require.NoError(t, err)
	require.False(t, importRes.IsError)

	var out struct {
		Success    bool   `json:"success"`
		Name       string `json:"name"`
		Statistics struct {
			Elements int `json:"elements"`
		} `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, importRes)), &out))
	assert.True(t, out.Success)
	assert.Equal(t, "Restored", out.Name)
	assert.Equal(t, 1, out.Statistics.Elements)
}
