package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/godscn/internal/source"
	"github.com/ludo-technologies/godscn/mcp"
)

const orderModel = `version: "1"
classes:
  - name: Order
    start_line: 1
    members:
      - {name: id, kind: field, type: long}
      - {name: total, kind: field, type: double}
      - {name: street, kind: field, type: String}
      - {name: city, kind: field, type: String}
      - {name: addItem, kind: method, accesses: [{target: id, kind: read}, {target: total, kind: write}]}
      - {name: refund, kind: method, accesses: [{target: id, kind: read}, {target: total, kind: write}]}
      - {name: invoice, kind: method, accesses: [{target: id, kind: read}, {target: total, kind: read}]}
      - {name: label, kind: method, accesses: [{target: street, kind: read}, {target: city, kind: read}]}
      - {name: move, kind: method, accesses: [{target: street, kind: write}, {target: city, kind: write}]}
      - {name: route, kind: method, accesses: [{target: street, kind: read}, {target: city, kind: read}]}
`

type args struct {
	arguments interface{}
	setupFS   func(t *testing.T) string
}

func setupConfig(t *testing.T) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "godscn.toml")
	require.NoError(t, os.WriteFile(configFile, []byte(""), 0o644))
	return configFile
}

func setupModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(orderModel), 0o644))
	return path
}

func runToolTest(
	t *testing.T,
	setupFS func(t *testing.T) string,
	arguments interface{},
	handlerFunc func(*mcp.HandlerSet, context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error),
) *mcplib.CallToolResult {
	t.Helper()
	h := mcp.NewHandlerSet(mcp.NewDependencies(setupConfig(t), nil, nil))

	if setupFS != nil {
		if m, ok := arguments.(map[string]interface{}); ok {
			m["path"] = setupFS(t)
		}
	}

	req := mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Arguments: arguments,
		},
	}

	res, err := handlerFunc(h, context.Background(), req)
	require.NoError(t, err)
	return res
}

type want struct {
	isError      bool
	expectPrefix string
	check        func(t *testing.T, text string)
}

func runToolCases(
	t *testing.T,
	tests map[string]struct {
		args args
		want want
	},
	handlerFunc func(*mcp.HandlerSet, context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error),
) {
	t.Helper()
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res := runToolTest(t, tc.args.setupFS, tc.args.arguments, handlerFunc)
			require.NotEmpty(t, res.Content)
			text := mcplib.GetTextFromContent(res.Content[0])

			assert.Equal(t, tc.want.isError, res.IsError, text)
			if tc.want.expectPrefix != "" {
				assert.True(t, strings.HasPrefix(text, tc.want.expectPrefix), "error text %q does not start with %q", text, tc.want.expectPrefix)
			}
			if tc.want.check != nil {
				tc.want.check(t, text)
			}
		})
	}
}

func TestHandleDetectGodClass(t *testing.T) {
	tests := map[string]struct {
		args args
		want want
	}{
		"invalid_arguments_format": {
			args: args{arguments: "not-a-map"},
			want: want{isError: true, expectPrefix: "invalid arguments format"},
		},
		"path_missing": {
			args: args{arguments: map[string]interface{}{}},
			want: want{isError: true, expectPrefix: "path parameter is required"},
		},
		"path_not_exist": {
			args: args{arguments: map[string]interface{}{"path": "/non/existing/path"}},
			want: want{isError: true, expectPrefix: "path does not exist"},
		},
		"summary": {
			args: args{
				setupFS:   setupModel,
				arguments: map[string]interface{}{"show_details": true},
			},
			want: want{check: func(t *testing.T, text string) {
				var result struct {
					GodClasses []struct {
						ClassName  string `json:"class_name"`
						Level      string `json:"level"`
						Candidates []struct {
							TargetClass string   `json:"target_class"`
							Members     []string `json:"members"`
						} `json:"candidates"`
					} `json:"god_classes"`
				}
				require.NoError(t, json.Unmarshal([]byte(text), &result))
				require.Len(t, result.GodClasses, 1)
				assert.Equal(t, "Order", result.GodClasses[0].ClassName)
				require.NotEmpty(t, result.GodClasses[0].Candidates)
				assert.Equal(t, "OrderProduct", result.GodClasses[0].Candidates[0].TargetClass)
				assert.NotEmpty(t, result.GodClasses[0].Candidates[0].Members)
			}},
		},
		"full_output": {
			args: args{
				setupFS:   setupModel,
				arguments: map[string]interface{}{"output_mode": "full"},
			},
			want: want{check: func(t *testing.T, text string) {
				var result map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(text), &result))
				assert.Contains(t, result, "findings")
				assert.Contains(t, result, "generated_at")
			}},
		},
		"score_filter": {
			args: args{
				setupFS:   setupModel,
				arguments: map[string]interface{}{"min_score": 0.99},
			},
			want: want{check: func(t *testing.T, text string) {
				var result map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(text), &result))
				assert.Empty(t, result["god_classes"])
			}},
		},
		"invalid_score": {
			args: args{
				setupFS:   setupModel,
				arguments: map[string]interface{}{"min_score": 4.0},
			},
			want: want{isError: true, expectPrefix: "analysis failed"},
		},
	}

	runToolCases(t, tests, (*mcp.HandlerSet).HandleDetectGodClass)
}

func TestHandleExtractClass(t *testing.T) {
	tests := map[string]struct {
		args args
		want want
	}{
		"class_missing": {
			args: args{setupFS: setupModel, arguments: map[string]interface{}{}},
			want: want{isError: true, expectPrefix: "class_name parameter is required"},
		},
		"unknown_class": {
			args: args{setupFS: setupModel, arguments: map[string]interface{}{"class_name": "Invoice"}},
			want: want{isError: true, expectPrefix: "extract class failed"},
		},
		"applied": {
			args: args{
				setupFS:   setupModel,
				arguments: map[string]interface{}{"class_name": "Order", "target_name": "Address"},
			},
			want: want{check: func(t *testing.T, text string) {
				var result struct {
					SourceClass string `json:"source_class"`
					TargetClass string `json:"target_class"`
					Delegate    string `json:"delegate_field"`
					Model       string `json:"model"`
				}
				require.NoError(t, json.Unmarshal([]byte(text), &result))
				assert.Equal(t, "Order", result.SourceClass)
				assert.Equal(t, "Address", result.TargetClass)
				assert.Equal(t, "address", result.Delegate)

				model, err := source.DecodeModel("model.yaml", []byte(result.Model))
				require.NoError(t, err)
				assert.Len(t, model.Classes, 2)
			}},
		},
		"json_model": {
			args: args{
				setupFS:   setupModel,
				arguments: map[string]interface{}{"class_name": "Order", "format": "json"},
			},
			want: want{check: func(t *testing.T, text string) {
				var result struct {
					Model string `json:"model"`
				}
				require.NoError(t, json.Unmarshal([]byte(text), &result))
				assert.True(t, strings.HasPrefix(strings.TrimSpace(result.Model), "{"))
			}},
		},
		"unsupported_format": {
			args: args{
				setupFS:   setupModel,
				arguments: map[string]interface{}{"class_name": "Order", "format": "csv"},
			},
			want: want{isError: true, expectPrefix: "extract class failed"},
		},
	}

	runToolCases(t, tests, (*mcp.HandlerSet).HandleExtractClass)
}
