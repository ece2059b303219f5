// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the portfolio content to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/content"
)

// Resource URIs.
const (
	ProfileURI       = "folio://profile"
	ContentFormatURI = "folio://content-format"
)

// Server wraps the MCP server with portfolio tools.
type Server struct {
	mcp *server.MCPServer
	lib *content.Library
}

// New creates a new MCP server reading from lib.
func New(lib *content.Library, version string) *Server {
	s := &Server{lib: lib}

	s.mcp = server.NewMCPServer(
		"Folio",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_projects",
		mcp.WithDescription("Search the project showcase by category and free text. "+
			"Featured projects come first."),
		mcp.WithString("query", mcp.Description("Case-insensitive match on title, description and tags")),
		mcp.WithString("category", mcp.Description("all, frontend, backend or fullstack"),
			mcp.Enum("all", "frontend", "backend", "fullstack")),
	), s.searchProjects)

	s.mcp.AddTool(mcp.NewTool("get_project",
		mcp.WithDescription("Get one project including its rendered write-up."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Project id, e.g. weather-dashboard")),
	), s.getProject)

	s.mcp.AddTool(mcp.NewTool("get_profile",
		mcp.WithDescription("Get the site owner's profile, experience, education and testimonials."),
	), s.getProfile)

	s.mcp.AddTool(mcp.NewTool("list_skills",
		mcp.WithDescription("List skill groups with proficiency levels from 0 to 100."),
	), s.listSkills)

	s.mcp.AddTool(mcp.NewTool("get_content_format",
		mcp.WithDescription("Returns the content file format. "+
			"Call this before drafting a new project file."),
	), s.getContentFormat)

	s.mcp.AddResource(
		mcp.NewResource(ProfileURI, "Owner Profile",
			mcp.WithResourceDescription("Profile and timeline of the portfolio owner as JSON."),
			mcp.WithMIMEType("application/json"),
		),
		s.readProfileResource,
	)
	s.mcp.AddResource(
		mcp.NewResource(ContentFormatURI, "Content Format",
			mcp.WithResourceDescription("Format of site.yaml and project Markdown files."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContentFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

type projectHit struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
}

type profileDoc struct {
	Profile      any `json:"profile"`
	Experience   any `json:"experience"`
	Education    any `json:"education"`
	Testimonials any `json:"testimonials"`
}

func (s *Server) searchProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, ok := catalog.ParseCategory(req.GetString("category", "all"))
	if !ok && req.GetString("category", "") != "" {
		return mcp.NewToolResultError("unknown category: " + req.GetString("category", "")), nil
	}
	view := catalog.Filter(s.lib.Snapshot().Projects, catalog.Criteria{
		Category: category,
		Query:    strings.TrimSpace(req.GetString("query", "")),
	})
	if len(view) == 0 {
		return mcp.NewToolResultText("no projects found"), nil
	}

	hits := make([]projectHit, len(view))
	for i, p := range view {
		hits[i] = projectHit{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Category:    string(p.Category),
			Tags:        p.Tags,
			Featured:    p.Featured,
		}
	}
	return jsonResult(hits)
}

func (s *Server) getProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, ok := s.lib.Snapshot().Project(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return jsonResult(p)
}

func (s *Server) getProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.profile())
}

func (s *Server) listSkills(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, g := range s.lib.Snapshot().Skills {
		fmt.Fprintf(&b, "## %s\n", g.Title)
		for _, sk := range g.Skills {
			fmt.Fprintf(&b, "- %s: %d\n", sk.Name, sk.Level)
		}
	}
	if b.Len() == 0 {
		return mcp.NewToolResultText("no skills listed"), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) getContentFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ProjectFormatContract), nil
}

func (s *Server) readProfileResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	out, err := json.MarshalIndent(s.profile(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ProfileURI,
			MIMEType: "application/json",
			Text:     string(out),
		},
	}, nil
}

func (s *Server) readContentFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ContentFormatURI,
			MIMEType: "text/markdown",
			Text:     ProjectFormatContract,
		},
	}, nil
}

func (s *Server) profile() profileDoc {
	snap := s.lib.Snapshot()
	return profileDoc{
		Profile:      snap.Profile,
		Experience:   snap.Experience,
		Education:    snap.Education,
		Testimonials: snap.Testimonials,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
