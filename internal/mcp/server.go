package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"comicstudio/internal/config"
	"comicstudio/internal/store"
	"comicstudio/internal/universe"
)

// Workbench is the slice of the studio session the tools drive.
type Workbench interface {
	Snapshot() (universe.Tree, universe.Author)
	Session() store.Session
	CreateUniverse(ctx context.Context) (string, error)
	Select(ctx context.Context, id string) error
	Update(ctx context.Context, p universe.Path, patch universe.Patch) error
	InsertWith(ctx context.Context, parent universe.Path, child universe.Node, patch universe.Patch) (string, error)
	Delete(ctx context.Context, p universe.Path) error
	AddCategoryFromTemplate(ctx context.Context, name string) (string, error)
}

type Server struct {
	wb        Workbench
	templates *config.Templates
	mcp       *sdk.Server
}

func NewServer(wb Workbench, templates *config.Templates, version string) *Server {
	if templates == nil {
		templates = config.DefaultTemplates()
	}
	s := &Server{
		wb:        wb,
		templates: templates,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "comicstudio",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
