package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/service"
)

// argumentFlags maps tool arguments to the command line flags they stand
// for, so that config file values only yield to arguments actually passed
var argumentFlags = map[string]string{
	"min_score":         "min-score",
	"max_candidates":    "max-candidates",
	"min_cohesion_gain": "min-cohesion-gain",
	"target_suffix":     "target-suffix",
	"recursive":         "recursive",
	"show_details":      "details",
}

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies("", nil, nil)
	}
	return &HandlerSet{deps: deps}
}

// toolArguments returns the argument map and the validated path argument
func toolArguments(request mcp.CallToolRequest) (map[string]interface{}, string, *mcp.CallToolResult) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, "", mcp.NewToolResultError("invalid arguments format")
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, "", mcp.NewToolResultError("path parameter is required and must be a string")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, "", mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path))
	}
	return args, path, nil
}

// explicitArguments returns the flag names of the tuning arguments present in args
func explicitArguments(args map[string]interface{}) map[string]bool {
	explicit := make(map[string]bool)
	for arg, flag := range argumentFlags {
		if _, ok := args[arg]; ok {
			explicit[flag] = true
		}
	}
	return explicit
}

// configTarget is the explicit config file or the directory to start the
// .godscn.toml search from
func (h *HandlerSet) configTarget(path string) string {
	if cp := h.deps.ConfigPath(); cp != "" {
		return cp
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return filepath.Dir(path)
	}
	return path
}

// applyTuning copies the tuning arguments onto req
func applyTuning(req *domain.GodClassRequest, args map[string]interface{}) {
	if v, ok := args["min_score"].(float64); ok {
		req.MinScore = v
	}
	if v, ok := args["max_candidates"].(float64); ok {
		req.MaxCandidates = int(v)
	}
	if v, ok := args["min_cohesion_gain"].(float64); ok {
		req.MinCohesionGain = v
	}
	if v, ok := args["target_suffix"].(string); ok {
		req.TargetSuffix = v
	}
	if v, ok := args["recursive"].(bool); ok {
		req.Recursive = domain.BoolPtr(v)
	}
	if v, ok := args["show_details"].(bool); ok {
		req.ShowDetails = v
	}
}

// HandleDetectGodClass handles the detect_god_class tool
func (h *HandlerSet) HandleDetectGodClass(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, path, errResult := toolArguments(request)
	if errResult != nil {
		return errResult, nil
	}

	req := *domain.DefaultGodClassRequest()
	req.Paths = []string{path}
	req.OutputWriter = io.Discard
	req.ConfigPath = h.configTarget(path)
	applyTuning(&req, args)

	useCase, err := h.deps.BuildGodClassUseCase(explicitArguments(args))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create analyzer: %v", err)), nil
	}

	result, err := useCase.AnalyzeAndReturn(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	maxResults := 0
	if mr, ok := args["max_results"].(float64); ok {
		maxResults = int(mr)
	}
	outputMode := "summary"
	if om, ok := args["output_mode"].(string); ok {
		outputMode = om
	}

	var responseData interface{}
	switch outputMode {
	case "full":
		responseData = result
	default:
		showDetails := req.ShowDetails
		if v, ok := args["show_details"].(bool); ok {
			showDetails = v
		}
		responseData = formatGodClassSummary(result, maxResults, showDetails)
	}

	jsonData, err := json.Marshal(responseData)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// formatGodClassSummary reduces the response to one entry per God Class
func formatGodClassSummary(result *domain.GodClassResponse, maxResults int, showDetails bool) map[string]interface{} {
	type Candidate struct {
		Rank         int      `json:"rank"`
		TargetClass  string   `json:"target_class"`
		Score        float64  `json:"score"`
		CohesionGain float64  `json:"cohesion_gain"`
		Fields       int      `json:"extracted_fields"`
		Methods      int      `json:"extracted_methods"`
		Members      []string `json:"members,omitempty"`
	}
	type Issue struct {
		File       string      `json:"file"`
		Line       int         `json:"line"`
		ClassName  string      `json:"class_name"`
		Level      string      `json:"level"`
		BestScore  float64     `json:"best_score"`
		Candidates []Candidate `json:"candidates"`
	}

	issues := []Issue{}
	for _, finding := range result.Findings {
		if maxResults > 0 && len(issues) >= maxResults {
			break
		}
		issue := Issue{
			File:      finding.FilePath,
			Line:      finding.StartLine,
			ClassName: finding.ClassName,
			Level:     string(service.ScoreLevelFor(finding.BestScore())),
			BestScore: finding.BestScore(),
		}
		for _, c := range finding.Candidates {
			candidate := Candidate{
				Rank:         c.Rank,
				TargetClass:  c.TargetClass,
				Score:        c.Score,
				CohesionGain: c.CohesionGain,
				Fields:       c.ExtractedFields,
				Methods:      c.ExtractedMethods,
			}
			if showDetails {
				for _, m := range c.Members {
					candidate.Members = append(candidate.Members, m.Name)
				}
			}
			issue.Candidates = append(issue.Candidates, candidate)
		}
		issues = append(issues, issue)
	}

	return map[string]interface{}{
		"god_classes": issues,
		"summary":     result.Summary,
		"warnings":    result.Warnings,
		"errors":      result.Errors,
	}
}

// HandleExtractClass handles the extract_class tool
func (h *HandlerSet) HandleExtractClass(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, path, errResult := toolArguments(request)
	if errResult != nil {
		return errResult, nil
	}

	className, ok := args["class_name"].(string)
	if !ok || className == "" {
		return mcp.NewToolResultError("class_name parameter is required and must be a string"), nil
	}

	var model bytes.Buffer
	req := *domain.DefaultExtractClassRequest()
	req.ClassName = className
	req.OutputWriter = &model
	if c, ok := args["candidate"].(float64); ok {
		req.Candidate = int(c)
	}
	if tn, ok := args["target_name"].(string); ok {
		req.TargetName = tn
	}
	if f, ok := args["format"].(string); ok && f != "" {
		req.OutputFormat = domain.OutputFormat(f)
	}
	req.Analysis.Paths = []string{path}
	req.Analysis.ConfigPath = h.configTarget(path)
	applyTuning(&req.Analysis, args)

	resp, err := h.deps.BuildExtractClassUseCase(explicitArguments(args)).Execute(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extract class failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(map[string]interface{}{
		"transaction_id":     resp.TransactionID,
		"source_class":       resp.SourceClass,
		"target_class":       resp.TargetClass,
		"delegate_field":     resp.DelegateField,
		"moved_fields":       resp.MovedFields,
		"moved_methods":      resp.MovedMethods,
		"rewritten_accesses": resp.RewrittenAccesses,
		"score":              resp.Score,
		"format":             string(req.OutputFormat),
		"model":              model.String(),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
