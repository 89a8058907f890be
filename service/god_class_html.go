package service

import (
	"html/template"
	"strings"

	"github.com/ludo-technologies/godscn/domain"
)

var godClassHTMLTemplate = template.Must(template.New("god_class_report").Funcs(template.FuncMap{
	"level": func(score float64) string {
		return strings.ToLower(string(ScoreLevelFor(score)))
	},
	"members": memberList,
}).Parse(godClassHTML))

// renderGodClassHTML renders the detection response as a standalone page
func renderGodClassHTML(response *domain.GodClassResponse) (string, error) {
	var buf strings.Builder
	if err := godClassHTMLTemplate.Execute(&buf, response); err != nil {
		return "", domain.NewOutputError("failed to execute HTML template", err)
	}
	return buf.String(), nil
}

const godClassHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>God Class Detection Report</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
        }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        .header, .content {
            background: white;
            border-radius: 10px;
            padding: 30px;
            margin-bottom: 20px;
            box-shadow: 0 10px 30px rgba(0,0,0,0.1);
        }
        .header h1 { color: #667eea; margin-bottom: 10px; }
        .header p { color: #666; font-size: 14px; }
        .metric-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
            gap: 20px;
            margin: 20px 0;
        }
        .metric-card {
            background: #f8f9fa;
            padding: 20px;
            border-radius: 8px;
            text-align: center;
            border-left: 4px solid #667eea;
        }
        .metric-value { font-size: 32px; font-weight: bold; color: #667eea; }
        .metric-label { color: #666; font-size: 14px; }
        h2 { margin-bottom: 15px; }
        h3 { margin: 20px 0 5px; }
        .location { color: #888; font-size: 13px; margin-bottom: 10px; }
        table { width: 100%; border-collapse: collapse; margin-bottom: 10px; }
        th, td { padding: 8px 10px; text-align: left; border-bottom: 1px solid #eee; vertical-align: top; }
        th { background: #f8f9fa; font-weight: 600; }
        .score-high { color: #dc3545; font-weight: bold; }
        .score-medium { color: #ff9800; font-weight: bold; }
        .score-low { color: #28a745; font-weight: bold; }
        .members { font-family: monospace; font-size: 13px; }
        .messages li { margin-left: 20px; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>God Class Detection Report</h1>
        <p>Generated at {{.GeneratedAt}} by godscn {{.Version}}</p>
        <div class="metric-grid">
            <div class="metric-card"><div class="metric-value">{{.Summary.ClassesAnalyzed}}</div><div class="metric-label">Classes Analyzed</div></div>
            <div class="metric-card"><div class="metric-value">{{.Summary.GodClasses}}</div><div class="metric-label">God Classes</div></div>
            <div class="metric-card"><div class="metric-value">{{.Summary.TotalCandidates}}</div><div class="metric-label">Candidates</div></div>
            <div class="metric-card"><div class="metric-value">{{printf "%.3f" .Summary.MaxScore}}</div><div class="metric-label">Max Score</div></div>
        </div>
    </div>
    <div class="content">
        <h2>Extract Class Candidates</h2>
        {{- if not .Findings}}
        <p>No God Classes found.</p>
        {{- end}}
        {{- range .Findings}}
        <h3>{{.ClassName}}</h3>
        <div class="location">{{.FilePath}}:{{.StartLine}}-{{.EndLine}} &middot; {{.TotalMembers}} members, {{.PinnedMembers}} pinned</div>
        <table>
            <tr><th>#</th><th>Target</th><th>Score</th><th>Gain</th><th>Coupling</th><th>Fields</th><th>Methods</th><th>Members</th></tr>
            {{- range .Candidates}}
            <tr>
                <td>{{.Rank}}</td>
                <td>{{.TargetClass}}</td>
                <td class="score-{{level .Score}}">{{printf "%.3f" .Score}}</td>
                <td>{{printf "%.3f" .CohesionGain}}</td>
                <td>{{printf "%.3f" .Coupling}}</td>
                <td>{{.ExtractedFields}}</td>
                <td>{{.ExtractedMethods}}</td>
                <td class="members">{{members .Members}}</td>
            </tr>
            {{- end}}
        </table>
        {{- end}}
    </div>
    {{- if or .Warnings .Errors}}
    <div class="content messages">
        {{- if .Warnings}}
        <h2>Warnings</h2>
        <ul>{{range .Warnings}}<li>{{.}}</li>{{end}}</ul>
        {{- end}}
        {{- if .Errors}}
        <h2>Errors</h2>
        <ul>{{range .Errors}}<li>{{.}}</li>{{end}}</ul>
        {{- end}}
    </div>
    {{- end}}
</div>
</body>
</html>
`
