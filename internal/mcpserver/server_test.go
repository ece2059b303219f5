package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, store := testutil.TestContent(t, testutil.Projects())
	lib, err := content.NewLibrary(content.NewLoader(store, logger), logger)
	if err != nil {
		t.Fatal(err)
	}
	return New(lib, "test")
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_projects":
		result, err = srv.searchProjects(ctx, req)
	case "get_project":
		result, err = srv.getProject(ctx, req)
	case "get_profile":
		result, err = srv.getProfile(ctx, req)
	case "list_skills":
		result, err = srv.listSkills(ctx, req)
	case "get_content_format":
		result, err = srv.getContentFormat(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestSearchProjects(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name string
		args map[string]any
		want []string
	}{
		{"all", map[string]any{}, []string{"shop", "board", "api"}},
		{"category", map[string]any{"category": "backend"}, []string{"api"}},
		{"query", map[string]any{"query": "react"}, []string{"shop", "board"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := callTool(t, srv, "search_projects", tt.args)
			if r.IsError {
				t.Fatalf("error: %s", resultText(r))
			}
			var hits []projectHit
			if err := json.Unmarshal([]byte(resultText(r)), &hits); err != nil {
				t.Fatal(err)
			}
			if len(hits) != len(tt.want) {
				t.Fatalf("hits = %d, want %d", len(hits), len(tt.want))
			}
			for i, id := range tt.want {
				if hits[i].ID != id {
					t.Errorf("hits[%d] = %s, want %s", i, hits[i].ID, id)
				}
			}
		})
	}
}

func TestSearchProjects_NoMatchAndBadCategory(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "search_projects", map[string]any{"query": "zzz"})
	if got := resultText(r); got != "no projects found" {
		t.Errorf("no match = %q", got)
	}

	r = callTool(t, srv, "search_projects", map[string]any{"category": "mobile"})
	if !r.IsError {
		t.Error("expected error for unknown category")
	}
}

func TestGetProject(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "get_project", map[string]any{"id": "shop"})
	if r.IsError || !strings.Contains(resultText(r), `"title": "Shop"`) {
		t.Errorf("get_project = %s", resultText(r))
	}

	r = callTool(t, srv, "get_project", map[string]any{"id": "nope"})
	if !r.IsError {
		t.Error("expected error for missing project")
	}

	r = callTool(t, srv, "get_project", map[string]any{})
	if !r.IsError {
		t.Error("expected error for missing id")
	}
}

func TestProfileAndSkills(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "get_profile", map[string]any{})
	if !strings.Contains(resultText(r), "Ada Lovelace") {
		t.Errorf("profile = %s", resultText(r))
	}

	r = callTool(t, srv, "list_skills", map[string]any{})
	if got := resultText(r); got != "## Core\n- Go: 80\n" {
		t.Errorf("skills = %q", got)
	}
}

func TestResources(t *testing.T) {
	srv := testServer(t)
	ctx := context.Background()

	req := mcp.ReadResourceRequest{}
	req.Params.URI = ProfileURI
	res, err := srv.readProfileResource(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := res[0].(mcp.TextResourceContents)
	if !ok || tc.MIMEType != "application/json" || !strings.Contains(tc.Text, "ada@example.com") {
		t.Errorf("profile resource = %+v", res[0])
	}

	res, err = srv.readContentFormatResource(ctx, mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if tc := res[0].(mcp.TextResourceContents); tc.Text != ProjectFormatContract {
		t.Error("content format resource mismatch")
	}
	if got := resultText(callTool(t, srv, "get_content_format", nil)); got != ProjectFormatContract {
		t.Error("content format tool mismatch")
	}
}
