package mcp

import (
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/schedview/internal/tables"
	"github.com/ziadkadry99/schedview/internal/view"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the loaded schedule as tools.
type Server struct {
	tables   *tables.Tables
	renderer *view.Renderer
	lang     string
	now      func() time.Time
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server over t.
func NewServer(t *tables.Tables, r *view.Renderer, lang string) *Server {
	if t == nil {
		t = &tables.Tables{}
	}
	if r == nil {
		r = &view.Renderer{}
	}
	s := &Server{
		tables:   t,
		renderer: r,
		lang:     lang,
		now:      time.Now,
	}

	s.mcp = server.NewMCPServer(
		"schedview",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(getScheduleTool, s.handleGetSchedule)
	s.mcp.AddTool(listTeachersTool, s.handleListTeachers)
	s.mcp.AddTool(getWeekTypeTool, s.handleGetWeekType)
	s.mcp.AddTool(listDaysTool, s.handleListDays)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
