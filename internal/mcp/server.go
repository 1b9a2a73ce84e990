package mcp

import (
	"context"
	"net/http"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"economap/internal/catalog"
	"economap/internal/graph"
	"economap/internal/propagate"
	"economap/internal/querygate"
	"economap/internal/store"
)

type Server struct {
	catalog *catalog.Catalog
	graph   *graph.Client
	engine  *propagate.Engine
	console *querygate.Console
	mcp     *sdk.Server
}

func NewServer(db store.Store, linksTable, version string) *Server {
	client := graph.NewClient(db, linksTable)
	s := &Server{
		catalog: catalog.New(db),
		graph:   client,
		engine:  propagate.NewEngine(client),
		console: querygate.NewConsole(db),
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "economap",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}

// HTTPHandler serves the same tools over the streamable HTTP transport.
func (s *Server) HTTPHandler() http.Handler {
	return sdk.NewStreamableHTTPHandler(func(*http.Request) *sdk.Server {
		return s.mcp
	}, nil)
}
