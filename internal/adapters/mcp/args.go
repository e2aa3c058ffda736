package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mitchellh/mapstructure"
)

// Argument structs for the tool handlers. Pointer fields distinguish
// "absent" from "zero" where the operation is a partial update.

type createWorkshopArgs struct {
	Name         string   `mapstructure:"name"`
	Description  string   `mapstructure:"description"`
	Domain       string   `mapstructure:"domain"`
	Facilitators []string `mapstructure:"facilitators"`
}

type loadWorkshopArgs struct {
	WorkshopID string `mapstructure:"workshop_id"`
	formatArgs `mapstructure:",squash"`
}

type addElementArgs struct {
	WorkshopID       string   `mapstructure:"workshop_id"`
	Type             string   `mapstructure:"type"`
	Name             string   `mapstructure:"name"`
	Position         *int     `mapstructure:"position"`
	Notes            string   `mapstructure:"notes"`
	CreatedBy        string   `mapstructure:"created_by"`
	Triggers         []string `mapstructure:"triggers"`
	TriggeredBy      []string `mapstructure:"triggered_by"`
	BoundedContextID string   `mapstructure:"bounded_context_id"`
}

type updateElementArgs struct {
	WorkshopID       string    `mapstructure:"workshop_id"`
	ElementID        string    `mapstructure:"element_id"`
	Name             *string   `mapstructure:"name"`
	Position         *int      `mapstructure:"position"`
	Notes            *string   `mapstructure:"notes"`
	Triggers         *[]string `mapstructure:"triggers"`
	TriggeredBy      *[]string `mapstructure:"triggered_by"`
	BoundedContextID *string   `mapstructure:"bounded_context_id"`
}

type deleteElementArgs struct {
	WorkshopID string `mapstructure:"workshop_id"`
	ElementID  string `mapstructure:"element_id"`
}

type createContextArgs struct {
	WorkshopID  string `mapstructure:"workshop_id"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Color       string `mapstructure:"color"`
}

type assignToContextArgs struct {
	WorkshopID string   `mapstructure:"workshop_id"`
	ContextID  string   `mapstructure:"context_id"`
	ElementIDs []string `mapstructure:"element_ids"`
}

type searchElementsArgs struct {
	WorkshopID       string `mapstructure:"workshop_id"`
	Query            string `mapstructure:"query"`
	ElementType      string `mapstructure:"element_type"`
	BoundedContextID string `mapstructure:"bounded_context_id"`
	pageArgs         `mapstructure:",squash"`
	formatArgs       `mapstructure:",squash"`
}

type timelineArgs struct {
	WorkshopID       string `mapstructure:"workshop_id"`
	ElementType      string `mapstructure:"element_type"`
	BoundedContextID string `mapstructure:"bounded_context_id"`
	pageArgs         `mapstructure:",squash"`
	formatArgs       `mapstructure:",squash"`
}

type contextOverviewArgs struct {
	WorkshopID string `mapstructure:"workshop_id"`
	ContextID  string `mapstructure:"context_id"`
	pageArgs   `mapstructure:",squash"`
	formatArgs `mapstructure:",squash"`
}

type statisticsArgs struct {
	WorkshopID string `mapstructure:"workshop_id"`
	formatArgs `mapstructure:",squash"`
}

type visualizeFlowArgs struct {
	WorkshopID     string `mapstructure:"workshop_id"`
	StartElementID string `mapstructure:"start_element_id"`
	MaxDepth       int    `mapstructure:"max_depth"`
	MaxElements    int    `mapstructure:"max_elements"`
}

type exportWorkshopArgs struct {
	WorkshopID      string `mapstructure:"workshop_id"`
	IncludeMetadata *bool  `mapstructure:"include_metadata"`
}

type importWorkshopArgs struct {
	WorkshopData string `mapstructure:"workshop_data"`
	NewName      string `mapstructure:"new_name"`
}

type pageArgs struct {
	Page     int `mapstructure:"page"`
	PageSize int `mapstructure:"page_size"`
}

type formatArgs struct {
	ResponseFormat string `mapstructure:"response_format"`
	DetailLevel    string `mapstructure:"detail_level"`
}

func (f formatArgs) json() bool {
	return f.ResponseFormat == "json"
}

// decodeArgs maps the raw tool arguments into a typed struct. Weak typing
// tolerates JSON numbers arriving as float64.
func decodeArgs(request mcp.CallToolRequest, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(request.GetArguments())
}
