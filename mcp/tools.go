package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers the godscn MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	s.AddTool(mcp.NewTool("detect_god_class",
		mcp.WithDescription("Detect God Classes in Java or Python code and rank the Extract Class refactorings that would split them"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to source code or a structural model file (file or directory)")),
		mcp.WithNumber("min_score",
			mcp.Description("Minimum candidate score 0.0-1.0 (default: 0)")),
		mcp.WithNumber("max_candidates",
			mcp.Description("Maximum candidates per class, 0 = unlimited (default: 10)")),
		mcp.WithNumber("min_cohesion_gain",
			mcp.Description("Minimum cohesion gain of a split 0.0-1.0 (default: 0.15)")),
		mcp.WithString("target_suffix",
			mcp.Description("Suffix of generated target class names (default: Product)")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively analyze directories (default: true)")),
		mcp.WithBoolean("show_details",
			mcp.Description("Include the members of every candidate (default: false)")),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum God Classes to return, 0 = all (default: 0)")),
		mcp.WithString("output_mode",
			mcp.Enum("summary", "full"),
			mcp.Description("summary returns one entry per class, full the whole report (default: summary)")),
	), h.HandleDetectGodClass)

	s.AddTool(mcp.NewTool("extract_class",
		mcp.WithDescription("Apply a ranked Extract Class candidate and return the resulting structural model"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to source code or a structural model file (file or directory)")),
		mcp.WithString("class_name",
			mcp.Required(),
			mcp.Description("Name of the God Class to split")),
		mcp.WithNumber("candidate",
			mcp.Description("Rank of the candidate to apply (default: 1)")),
		mcp.WithString("target_name",
			mcp.Description("Name of the extracted class (default: generated)")),
		mcp.WithString("format",
			mcp.Enum("yaml", "json"),
			mcp.Description("Format of the returned model (default: yaml)")),
		mcp.WithNumber("min_cohesion_gain",
			mcp.Description("Minimum cohesion gain of a split 0.0-1.0 (default: 0.15)")),
		mcp.WithString("target_suffix",
			mcp.Description("Suffix of generated target class names (default: Product)")),
	), h.HandleExtractClass)
}
