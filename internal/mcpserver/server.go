// Package mcpserver exposes roadmap operations as MCP tools.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/agentic-research/roadmap-content/internal/app"
)

const roadmapArg = "roadmap"

// Handlers implements the tools over an App.
type Handlers struct {
	App *app.App
}

// New returns an MCP server with every tool registered.
func New(a *app.App, version string) *server.MCPServer {
	h := &Handlers{App: a}
	s := server.NewMCPServer("roadmap-content", version, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("list_roadmaps",
		mcp.WithDescription("List the roadmap ids that can be backfilled."),
	), h.ListRoadmaps)

	s.AddTool(mcp.NewTool("roadmap_status",
		mcp.WithDescription("Show, per topic, whether its content file is missing, empty or already written. Writes nothing."),
		mcp.WithString(roadmapArg, mcp.Required(), mcp.Description("Roadmap id, e.g. frontend")),
	), h.Status)

	s.AddTool(mcp.NewTool("backfill_roadmap",
		mcp.WithDescription("Fill every empty topic content file of a roadmap, with generated text when an API key is configured and a heading placeholder otherwise."),
		mcp.WithString(roadmapArg, mcp.Required(), mcp.Description("Roadmap id, e.g. frontend")),
	), h.Backfill)

	return s
}

// Serve runs the server on stdin/stdout until the client disconnects.
func Serve(a *app.App, version string) error {
	return server.ServeStdio(New(a, version))
}

// ListRoadmaps handles list_roadmaps.
func (h *Handlers) ListRoadmaps(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := h.App.Roadmaps()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(ids, "\n")), nil
}

// Status handles roadmap_status.
func (h *Handlers) Status(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString(roadmapArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := h.App.Status(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	for _, r := range results {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return mcp.NewToolResultText(b.String()), nil
}

// Backfill handles backfill_roadmap.
func (h *Handlers) Backfill(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString(roadmapArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	report, err := h.App.Backfill(ctx, id)
	if err != nil {
		if report == nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("%s\n%v", report.Summary(), err)), nil
	}
	mode := "generated"
	if h.App.PlaceholderMode() {
		mode = "placeholder"
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s (%s mode)", report.Summary(), mode)), nil
}
