package dashboard

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>World Population Dashboard</title>
<style>
body { font-family: -apple-system, Segoe UI, Helvetica, Arial, sans-serif; margin: 0 auto; max-width: 1100px; padding: 24px; color: #222; }
h1 { margin-bottom: 4px; }
.meta { color: #777; font-size: 13px; margin-bottom: 24px; }
section { margin-bottom: 40px; }
table { border-collapse: collapse; font-size: 13px; margin: 8px 0 16px; }
th, td { border: 1px solid #ddd; padding: 4px 8px; text-align: left; }
th { background: #f4f4f4; }
.chart img { width: 100%; border: 1px solid #eee; }
.error { background: #f8d7da; color: #721c24; padding: 8px 12px; border-radius: 4px; margin: 4px 0; }
</style>
</head>
<body>
<h1>World Population Dashboard</h1>
<div class="meta">session {{.SessionID}} &middot; {{.Created}}</div>
{{range .Summaries}}
<section>
<h2>{{if eq .Stage "before"}}Initial Data{{else}}After Cleaning{{end}}</h2>
<p>{{.Rows}} rows, {{len .Columns}} columns &middot; <a href="/summaries/{{.Stage}}.md">markdown</a></p>
<table>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Head}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
<table>
<tr><th>Column</th><th>Non-Null Count</th><th>Null Count</th><th>Kind</th></tr>
{{range .Columns}}<tr><td>{{.Name}}</td><td>{{.NonNull}}</td><td>{{.Nulls}}</td><td>{{.Kind}}</td></tr>
{{end}}</table>
</section>
{{end}}
{{range .Failures}}<div class="error">{{.}}</div>
{{end}}
{{range .Panels}}
<section class="chart" id="{{.ID}}">
<h2>{{.Title}}</h2>
<img src="{{.URL}}" alt="{{.Title}}">
</section>
{{end}}
</body>
</html>
`
