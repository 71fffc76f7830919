package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"comicstudio/internal/export"
	"comicstudio/internal/universe"
	"comicstudio/internal/validate"
)

type ListUniversesInput struct{}

type GetUniverseInput struct {
	ID string `json:"id,omitempty" jsonschema:"universe id; defaults to the active universe"`
}

type CreateUniverseInput struct{}

type SelectUniverseInput struct {
	ID string `json:"id" jsonschema:"universe id to make active"`
}

type GetNodeInput struct {
	Path string `json:"path" jsonschema:"node path such as uid/characters/cid"`
}

type AddNodeInput struct {
	Parent string         `json:"parent" jsonschema:"path of the node that will own the new one"`
	Kind   string         `json:"kind" jsonschema:"character, trait, section, location, script, scene, dialogue, category, item, field, worldNote or image"`
	Fields map[string]any `json:"fields,omitempty" jsonschema:"initial field values keyed by JSON field name"`
}

type UpdateNodeInput struct {
	Path   string         `json:"path" jsonschema:"node path"`
	Fields map[string]any `json:"fields" jsonschema:"fields to merge, keyed by JSON field name"`
}

type DeleteNodeInput struct {
	Path string `json:"path" jsonschema:"node path; deleting a universe removes everything in it"`
}

type AddCategoryInput struct {
	Template string `json:"template" jsonschema:"template id or name"`
}

type ExportInput struct {
	ID     string `json:"id,omitempty" jsonschema:"universe id; defaults to the active universe"`
	Images bool   `json:"images,omitempty" jsonschema:"embed image data in the document"`
}

type ValidateInput struct{}

type UniverseSummaryOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Characters int    `json:"characters"`
	Locations  int    `json:"locations"`
	Scripts    int    `json:"scripts"`
	Active     bool   `json:"active"`
}

type ListUniversesOutput struct {
	Universes []UniverseSummaryOutput `json:"universes"`
}

type UniverseOutput struct {
	Universe universe.Universe `json:"universe"`
}

type NodeOutput struct {
	Path   string         `json:"path"`
	Kind   string         `json:"kind"`
	Fields map[string]any `json:"fields"`
}

type NodeRefOutput struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

type OKOutput struct {
	OK bool `json:"ok"`
}

type ExportOutput struct {
	Filename string `json:"filename"`
	Markdown string `json:"markdown"`
}

type IssueOutput struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
}

type ValidateOutput struct {
	Issues []IssueOutput `json:"issues"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_universes",
		Description: "List universes with their sizes and which one is active",
	}, s.handleListUniverses)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_universe",
		Description: "Return a whole universe",
	}, s.handleGetUniverse)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "create_universe",
		Description: "Create a universe with default values and make it active",
	}, s.handleCreateUniverse)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "select_universe",
		Description: "Make a universe active",
	}, s.handleSelectUniverse)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_node",
		Description: "Retrieve one node of a universe by path",
	}, s.handleGetNode)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "add_node",
		Description: "Add a node with default values under a parent",
	}, s.handleAddNode)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "update_node",
		Description: "Merge field values into a node",
	}, s.handleUpdateNode)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "delete_node",
		Description: "Delete a node and everything it contains",
	}, s.handleDeleteNode)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "add_category",
		Description: "Add a custom category from a template to the active universe",
	}, s.handleAddCategory)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "export_markdown",
		Description: "Render a universe as a Markdown project document",
	}, s.handleExport)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "validate",
		Description: "Check the stored universes for consistency problems",
	}, s.handleValidate)
}

func (s *Server) handleListUniverses(ctx context.Context, req *sdk.CallToolRequest, input ListUniversesInput) (*sdk.CallToolResult, ListUniversesOutput, error) {
	tree, _ := s.wb.Snapshot()
	active := s.wb.Session().ActiveUniverseID

	output := make([]UniverseSummaryOutput, 0, len(tree))
	for _, u := range tree {
		output = append(output, UniverseSummaryOutput{
			ID:         u.ID,
			Name:       u.Name,
			Characters: len(u.Characters),
			Locations:  len(u.Locations),
			Scripts:    len(u.Scripts),
			Active:     u.ID == active,
		})
	}
	return nil, ListUniversesOutput{Universes: output}, nil
}

func (s *Server) handleGetUniverse(ctx context.Context, req *sdk.CallToolRequest, input GetUniverseInput) (*sdk.CallToolResult, UniverseOutput, error) {
	u, err := s.universe(input.ID)
	if err != nil {
		return nil, UniverseOutput{}, err
	}
	return nil, UniverseOutput{Universe: u}, nil
}

func (s *Server) handleCreateUniverse(ctx context.Context, req *sdk.CallToolRequest, input CreateUniverseInput) (*sdk.CallToolResult, NodeRefOutput, error) {
	id, err := s.wb.CreateUniverse(ctx)
	if err != nil {
		return nil, NodeRefOutput{}, err
	}
	return nil, NodeRefOutput{ID: id, Path: universe.UniversePath(id).String()}, nil
}

func (s *Server) handleSelectUniverse(ctx context.Context, req *sdk.CallToolRequest, input SelectUniverseInput) (*sdk.CallToolResult, OKOutput, error) {
	if input.ID == "" {
		return nil, OKOutput{}, fmt.Errorf("id is required")
	}
	if err := s.wb.Select(ctx, input.ID); err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleGetNode(ctx context.Context, req *sdk.CallToolRequest, input GetNodeInput) (*sdk.CallToolResult, NodeOutput, error) {
	p, err := universe.ParsePath(input.Path)
	if err != nil {
		return nil, NodeOutput{}, err
	}
	tree, _ := s.wb.Snapshot()
	node, ok := universe.Find(tree, p)
	if !ok {
		return nil, NodeOutput{}, fmt.Errorf("node not found: %s", p)
	}
	fields, err := nodeFields(node)
	if err != nil {
		return nil, NodeOutput{}, err
	}
	return nil, NodeOutput{Path: p.String(), Kind: string(node.Kind()), Fields: fields}, nil
}

func (s *Server) handleAddNode(ctx context.Context, req *sdk.CallToolRequest, input AddNodeInput) (*sdk.CallToolResult, NodeRefOutput, error) {
	parent, err := universe.ParsePath(input.Parent)
	if err != nil {
		return nil, NodeRefOutput{}, err
	}
	kind, ok := universe.ParseKind(input.Kind)
	if !ok {
		return nil, NodeRefOutput{}, fmt.Errorf("unknown kind %q", input.Kind)
	}
	node, _ := universe.New(kind)
	id, err := s.wb.InsertWith(ctx, parent, node, universe.Patch(input.Fields))
	if err != nil {
		return nil, NodeRefOutput{}, err
	}
	tree, _ := s.wb.Snapshot()
	p, ok := universe.ChildPath(tree, parent, id)
	if !ok {
		return nil, NodeRefOutput{}, fmt.Errorf("node %s not found after insert", id)
	}
	return nil, NodeRefOutput{ID: id, Path: p.String()}, nil
}

func (s *Server) handleUpdateNode(ctx context.Context, req *sdk.CallToolRequest, input UpdateNodeInput) (*sdk.CallToolResult, OKOutput, error) {
	p, err := universe.ParsePath(input.Path)
	if err != nil {
		return nil, OKOutput{}, err
	}
	if len(input.Fields) == 0 {
		return nil, OKOutput{}, fmt.Errorf("fields are required")
	}
	if err := s.wb.Update(ctx, p, universe.Patch(input.Fields)); err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleDeleteNode(ctx context.Context, req *sdk.CallToolRequest, input DeleteNodeInput) (*sdk.CallToolResult, OKOutput, error) {
	p, err := universe.ParsePath(input.Path)
	if err != nil {
		return nil, OKOutput{}, err
	}
	if err := s.wb.Delete(ctx, p); err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleAddCategory(ctx context.Context, req *sdk.CallToolRequest, input AddCategoryInput) (*sdk.CallToolResult, NodeRefOutput, error) {
	tmpl, ok := s.templates.Lookup(input.Template)
	if !ok {
		return nil, NodeRefOutput{}, fmt.Errorf("unknown template %q", input.Template)
	}
	id, err := s.wb.AddCategoryFromTemplate(ctx, tmpl.Name)
	if err != nil {
		return nil, NodeRefOutput{}, err
	}
	uid := s.wb.Session().ActiveUniverseID
	return nil, NodeRefOutput{ID: id, Path: universe.UniversePath(uid).Child(universe.CustomCategories, id).String()}, nil
}

func (s *Server) handleExport(ctx context.Context, req *sdk.CallToolRequest, input ExportInput) (*sdk.CallToolResult, ExportOutput, error) {
	u, err := s.universe(input.ID)
	if err != nil {
		return nil, ExportOutput{}, err
	}
	_, author := s.wb.Snapshot()
	var buf bytes.Buffer
	if err := (export.Markdown{Images: input.Images}).Export(&buf, u, author); err != nil {
		return nil, ExportOutput{}, err
	}
	return nil, ExportOutput{Filename: export.Filename(u), Markdown: buf.String()}, nil
}

func (s *Server) handleValidate(ctx context.Context, req *sdk.CallToolRequest, input ValidateInput) (*sdk.CallToolResult, ValidateOutput, error) {
	tree, _ := s.wb.Snapshot()
	report := validate.Run(tree, s.wb.Session())

	output := make([]IssueOutput, 0, len(report.Issues))
	for _, issue := range report.Issues {
		output = append(output, IssueOutput{
			Severity: string(issue.Severity),
			Code:     issue.Code,
			Message:  issue.Message,
			Path:     issue.Path,
		})
	}
	return nil, ValidateOutput{Issues: output}, nil
}

func (s *Server) universe(id string) (universe.Universe, error) {
	if id == "" {
		id = s.wb.Session().ActiveUniverseID
	}
	if id == "" {
		return universe.Universe{}, fmt.Errorf("no active universe; pass an id")
	}
	tree, _ := s.wb.Snapshot()
	u, ok := universe.FindUniverse(tree, id)
	if !ok {
		return universe.Universe{}, fmt.Errorf("universe not found: %s", id)
	}
	return u, nil
}

func nodeFields(node universe.Node) (map[string]any, error) {
	raw, err := json.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", node.Kind(), err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", node.Kind(), err)
	}
	return fields, nil
}
