package report

import (
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/Masterminds/sprig/v3"
)

var htmlTemplate = htmltemplate.Must(
	htmltemplate.New("report").Funcs(sprig.HtmlFuncMap()).Parse(htmlBody),
)

var textTemplate = texttemplate.Must(
	texttemplate.New("report").Funcs(sprig.TxtFuncMap()).Parse(textBody),
)

const htmlBody = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; margin: 20px; }
  .header { background-color: #f8f9fa; padding: 20px; border-radius: 5px; margin-bottom: 20px; }
  .cost-summary { background-color: #e8f5e9; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
  table { border-collapse: collapse; width: 100%; margin-bottom: 20px; }
  th, td { border: 1px solid #ddd; padding: 12px; text-align: left; }
  th { background-color: #f2f2f2; font-weight: bold; }
  .region-header { background-color: #f3e5f5; font-weight: bold; }
  .service-header { background-color: #fafafa; font-weight: bold; }
  .usage-type-row td:first-child { padding-left: 30px; color: #555; }
  .usage-details { color: #777; font-size: 0.9em; }
  .category-header { background-color: #e3f2fd; font-weight: bold; }
  .cost-high { color: #d32f2f; font-weight: bold; }
  .cost-medium { color: #f57c00; font-weight: bold; }
  .cost-low { color: #388e3c; }
</style>
</head>
<body>
<div class="header">
  <h1>AWS Cost &amp; Resource Report</h1>
  <p><strong>Generated:</strong> {{ .GeneratedAt }}</p>
  <p><strong>Billing window:</strong> {{ .WindowStart }} to {{ .WindowEnd }}</p>
</div>
<div class="cost-summary">
  <h2>Total Cost</h2>
  <p><span class="{{ .BandClass }}">{{ .Total }} {{ .Currency }}</span></p>
</div>
{{- if .Lines }}
<h2>Cost by Service</h2>
<table>
<tr><th>Service / Usage Type</th><th>Cost</th><th>Usage</th><th>Share</th></tr>
{{- range .Lines }}
<tr class="service-header"><td>{{ .Service }}</td><td class="{{ .BandClass }}">{{ .Amount }}</td><td></td><td>{{ .Percentage }}</td></tr>
{{- range .Details }}
<tr class="usage-type-row"><td>{{ .Name }}</td><td class="{{ .BandClass }}">{{ .Amount }}</td><td class="usage-details">{{ .UsageInfo }}</td><td>{{ .Percentage }}</td></tr>
{{- end }}
{{- end }}
</table>
{{- end }}
{{- if .Regions }}
<h2>Resources by Region</h2>
<table>
<tr><th>Region / Category</th><th>Resource ID</th><th>State</th><th>Details</th></tr>
{{- range .Regions }}
<tr class="region-header"><td colspan="4">{{ upper .Name }} ({{ .Count }} resources)</td></tr>
{{- range .Categories }}
<tr class="category-header"><td colspan="4">{{ .Name }} ({{ .Count }})</td></tr>
{{- range .Resources }}
<tr><td></td><td>{{ .ID }}</td><td>{{ .State }}</td><td>{{ .Details }}</td></tr>
{{- end }}
{{- end }}
{{- end }}
</table>
{{- end }}
<div class="cost-summary">
  <h2>Summary</h2>
  <ul>
    <li><strong>Regions scanned:</strong> {{ .RegionCount }}</li>
    <li><strong>Resources found:</strong> {{ .ResourceCount }}</li>
    <li><strong>Services with charges:</strong> {{ .LineItemCount }}</li>
    <li><strong>Usage types:</strong> {{ .UsageCount }}</li>
  </ul>
</div>
<hr>
<p><small>This report was generated automatically. For more granular cost
analysis, check the Cost Explorer dashboard.</small></p>
</body>
</html>
`

const textBody = `AWS COST & RESOURCE REPORT
Generated: {{ .GeneratedAt }}
Billing window: {{ .WindowStart }} to {{ .WindowEnd }}

TOTAL COST: {{ .Total }} {{ .Currency }}
{{ if .Lines }}
COST BY SERVICE
{{ repeat 50 "=" }}
{{- range .Lines }}
{{ .Service }}: {{ .Amount }} ({{ .Percentage }})
{{- range .Details }}
  - {{ .Name }}: {{ .Amount }} ({{ .Percentage }})
{{- end }}
{{- end }}
{{ end }}
{{- if .Regions }}
RESOURCES BY REGION
{{ repeat 50 "=" }}
{{- range .Regions }}

{{ upper .Name }} ({{ .Count }} resources)
{{- range .Categories }}
  {{ .Name }}: {{ .Count }}
{{- range .Resources }}
    - {{ .ID }} ({{ .State }}) {{ .Details }}
{{- end }}
{{- end }}
{{- end }}
{{ end }}
SUMMARY
{{ repeat 50 "=" }}
Regions scanned: {{ .RegionCount }}
Resources found: {{ .ResourceCount }}
Services with charges: {{ .LineItemCount }}
Usage types: {{ .UsageCount }}
`
